package models

import "time"

// Client and Procedure are the business records list screens edit. The
// session layer treats them as opaque; they only need a stable ID for the
// event bus.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Client) Key() string { return c.ID }

type Procedure struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Procedure) Key() string { return p.ID }
