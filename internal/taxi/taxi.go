package taxi

import (
	"context"
	"errors"
	"fmt"

	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/nav"
	"transit-cnmi/internal/transit"
)

// EmergencyNumber is dialed after the user confirms an emergency call.
const EmergencyNumber = "tel:911"

var (
	ErrUnknownTaxi      = errors.New("unknown taxi")
	ErrCallsUnsupported = errors.New("phone calls are not supported on this device")
	ErrNoModal          = errors.New("no dialog open")
)

// Dialer is the device's phone intent.
type Dialer interface {
	CanDial(ctx context.Context, url string) (bool, error)
	Dial(ctx context.Context, url string) error
}

type Modal string

const (
	ModalNone      Modal = ""
	ModalRequest   Modal = "request"
	ModalEmergency Modal = "emergency"
)

// Panel is the ride-hail screen state. Not safe for concurrent use.
type Panel struct {
	cat *catalog.Catalog

	Pickup      string
	Destination string
	selected    string
	modal       Modal
}

func NewPanel(cat *catalog.Catalog) *Panel {
	return &Panel{cat: cat}
}

func (p *Panel) Modal() Modal { return p.modal }

// UseQuickDestination fills the destination field from a shortcut.
func (p *Panel) UseQuickDestination(q transit.QuickDestination) {
	p.Destination = q.Name
}

func (p *Panel) SelectTaxi(id string) error {
	if _, ok := p.cat.Taxi(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTaxi, id)
	}
	p.selected = id
	return nil
}

// Selected returns the chosen taxi, if any.
func (p *Panel) Selected() (transit.Taxi, bool) {
	if p.selected == "" {
		return transit.Taxi{}, false
	}
	return p.cat.Taxi(p.selected)
}

func (p *Panel) OpenRequest() { p.modal = ModalRequest }

// Acknowledge closes the request dialog and sends the user to the map.
func (p *Panel) Acknowledge() (nav.Target, error) {
	if p.modal != ModalRequest {
		return nav.Target{}, ErrNoModal
	}
	p.modal = ModalNone
	return nav.To(nav.Map), nil
}

func (p *Panel) OpenEmergency() { p.modal = ModalEmergency }

func (p *Panel) CancelEmergency() {
	if p.modal == ModalEmergency {
		p.modal = ModalNone
	}
}

// ConfirmEmergency closes the dialog and dials the emergency number.
func (p *Panel) ConfirmEmergency(ctx context.Context, d Dialer) error {
	if p.modal != ModalEmergency {
		return ErrNoModal
	}
	p.modal = ModalNone
	ok, err := d.CanDial(ctx, EmergencyNumber)
	if err != nil {
		return fmt.Errorf("emergency call: %w", err)
	}
	if !ok {
		return ErrCallsUnsupported
	}
	if err := d.Dial(ctx, EmergencyNumber); err != nil {
		return fmt.Errorf("emergency call: %w", err)
	}
	return nil
}
