package transit

// Destination is a named place offered as a search target on the map screen.
type Destination struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"` // airport, district, school, ...
}

// RouteOption is a line offered for a chosen destination.
type RouteOption struct {
	ID          string `yaml:"id" json:"id"`
	Route       string `yaml:"route" json:"route"`
	Destination string `yaml:"destination" json:"destination"` // Destination.Name
	Duration    string `yaml:"duration" json:"duration"`
	NextBus     string `yaml:"nextBus" json:"nextBus"`
}

type Arrival struct {
	ID    string `yaml:"id" json:"id"`
	Route string `yaml:"route" json:"route"`
	Time  string `yaml:"time" json:"time"`
	Type  string `yaml:"type" json:"type"`
}

type Taxi struct {
	ID            string  `yaml:"id" json:"id"`
	Driver        string  `yaml:"driver" json:"driver"`
	Rating        float64 `yaml:"rating" json:"rating"`
	Price         string  `yaml:"price" json:"price"`
	EstimatedTime string  `yaml:"estimatedTime" json:"estimatedTime"`
	Distance      string  `yaml:"distance" json:"distance"`
	Vehicle       string  `yaml:"vehicle" json:"vehicle"`
	PlateNumber   string  `yaml:"plateNumber" json:"plateNumber"`
}

type BusLocation struct {
	ID      string  `yaml:"id" json:"id"`
	Lat     float64 `yaml:"lat" json:"lat"`
	Lon     float64 `yaml:"lon" json:"lon"`
	Route   string  `yaml:"route" json:"route"`
	Heading float64 `yaml:"heading" json:"heading"` // degrees
}

// Route is a transit line as listed on the routes and driver screens.
// The tag fields take precedence over text matching in category filters.
type Route struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Color       string `yaml:"color" json:"color"`
	NextArrival string `yaml:"nextArrival" json:"nextArrival"`
	Frequency   string `yaml:"frequency" json:"frequency"`
	Status      string `yaml:"status" json:"status"`
	Express     bool   `yaml:"express" json:"express,omitempty"`
	Local       bool   `yaml:"local" json:"local,omitempty"`
	Airport     bool   `yaml:"airport" json:"airport,omitempty"`
}

type StopStatus string

const (
	StopActive  StopStatus = "active"
	StopPending StopStatus = "pending"
)

type Stop struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Time        string     `yaml:"time" json:"time"`
	CheckedIn   int        `yaml:"checkedIn" json:"checkedIn"`
	Status      StopStatus `yaml:"status" json:"status"`
}

type Attraction struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Rating      float64  `yaml:"rating" json:"rating"`
	TransitInfo string   `yaml:"transitInfo" json:"transitInfo"`
	Tips        string   `yaml:"tips" json:"tips"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"` // guide category ids
}

type Category struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon"`
}

type Language struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	NativeName string `yaml:"nativeName" json:"nativeName"`
	Code       string `yaml:"code" json:"code"`
}

type QuickDestination struct {
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon"`
}
