// Package auth is a stand-in for real sign-in. Every submit waits a fixed
// delay and succeeds; there are no accounts, tokens or validation.
package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"transit-cnmi/internal/nav"
)

const DefaultDelay = time.Second

type Role string

const (
	Passenger Role = "passenger"
	Driver    Role = "driver"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", Passenger:
		return Passenger, nil
	case Driver:
		return Driver, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	PhoneNumber     string `json:"phoneNumber"`
	Role            Role   `json:"role"`
}

type Result struct {
	Email string     `json:"email"`
	Role  Role       `json:"role"`
	Next  nav.Target `json:"next"`
}

// Simulator fakes the network round trip of a sign-in.
type Simulator struct {
	delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	if delay < 0 {
		delay = 0
	}
	return &Simulator{delay: delay}
}

func (s *Simulator) Login(ctx context.Context, c Credentials) (Result, error) {
	if err := s.wait(ctx); err != nil {
		return Result{}, err
	}
	log.Printf("auth: login %s", c.Email)
	return Result{Email: c.Email, Role: Passenger, Next: home()}, nil
}

func (s *Simulator) Signup(ctx context.Context, r Registration) (Result, error) {
	role, err := ParseRole(string(r.Role))
	if err != nil {
		return Result{}, err
	}
	if err := s.wait(ctx); err != nil {
		return Result{}, err
	}
	log.Printf("auth: signup %s role=%s", r.Email, role)
	return Result{Email: r.Email, Role: role, Next: home()}, nil
}

func (s *Simulator) wait(ctx context.Context) error {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func home() nav.Target {
	return nav.Target{Screen: nav.Map, Replace: true}
}
