package domain

import "context"

type Movie struct {
	ID       int
	Title    string
	Duration int
	Active   bool
}

type Room struct {
	ID         int
	Name       string
	RoomTypeID int
	Active     bool
}

// CatalogRepository covers the read-only lookups the scheduling workflow needs.
// Catalog administration itself lives outside this service.
type CatalogRepository interface {
	GetMovieByID(ctx context.Context, id int) (*Movie, error)
	GetRoomByID(ctx context.Context, id int) (*Room, error)
}
