package models

// Event lives in MongoDB, so the schema is looser than the relational models.
// The ID is the hex form of the Mongo ObjectID.
type Event struct {
	ID               string  `json:"_id" bson:"_id,omitempty"`
	Name             string  `json:"name" bson:"name"`
	Location         string  `json:"location" bson:"location"`
	Date             string  `json:"date" bson:"date"`
	Price            float64 `json:"price" bson:"price"`
	TicketsAvailable int     `json:"tickets_available" bson:"tickets_available"`
	Description      string  `json:"description" bson:"description"`
	Picture          string  `json:"picture" bson:"picture"`
}

const DefaultEventPicture = "https://via.placeholder.com/400x250"

type CreateEventRequest struct {
	Name             string  `json:"name"`
	Location         string  `json:"location"`
	Date             string  `json:"date"`
	Price            float64 `json:"price"`
	TicketsAvailable int     `json:"tickets_available"`
	Description      string  `json:"description"`
	Picture          string  `json:"picture"`
}

// EditEventRequest is a full-record replace: every field is resent on edit,
// there is no partial patch and no version token.
type EditEventRequest struct {
	Name             string  `json:"name"`
	Location         string  `json:"location"`
	Date             string  `json:"date"`
	Price            float64 `json:"price"`
	TicketsAvailable int     `json:"tickets_available"`
	Description      string  `json:"description"`
	Picture          string  `json:"picture"`
}

type EventListResponse struct {
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	Events     []Event `json:"events"`
}
