package http

import (
	"time"

	"github.com/shareloop/shareloop-backend/internal/comment"
	"github.com/shareloop/shareloop-backend/internal/item"
)

// ItemTag is the short item reference embedded in other responses.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingTag is the booking reference embedded in item views.
type BookingTag struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(cm *comment.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.AuthorName,
		Created:    cm.Created,
	}
}

type ItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingTag       `json:"lastBooking"`
	NextBooking *BookingTag       `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
		Comments:    []CommentResponse{},
	}
}

func NewItemViewResponse(v *item.View) ItemResponse {
	resp := NewItemResponse(v.Item)
	resp.LastBooking = bookingTag(v.Bookings.Last)
	resp.NextBooking = bookingTag(v.Bookings.Next)
	for _, cm := range v.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(cm))
	}
	return resp
}

func bookingTag(info *item.BookingInfo) *BookingTag {
	if info == nil {
		return nil
	}
	return &BookingTag{ID: info.ID, BookerID: info.BookerID}
}

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}
