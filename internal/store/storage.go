// Package store wires every repository onto one pgx pool and hands the
// application a single container to depend on.
package store

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"conexaoiris/internal/domain/categories"
	"conexaoiris/internal/domain/events"
	"conexaoiris/internal/domain/locations"
	"conexaoiris/internal/domain/pushtokens"
	"conexaoiris/internal/domain/users"
)

type Storage struct {
	Users      users.Store
	Categories categories.Store
	Locations  locations.Store
	Events     events.Store
	PushTokens pushtokens.Store
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{
		Users:      users.NewRepository(db),
		Categories: categories.NewRepository(db),
		Locations:  locations.NewRepository(db),
		Events:     events.NewRepository(db),
		PushTokens: pushtokens.NewRepository(db),
	}
}
