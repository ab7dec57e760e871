package http

import (
	"time"

	"github.com/shareloop/shareloop-backend/internal/item"
	"github.com/shareloop/shareloop-backend/internal/itemrequest"
)

// AnswerResponse is an item listed in answer to a request.
type AnswerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   int64  `json:"requestId"`
}

type RequestResponse struct {
	ID          int64            `json:"id"`
	Description string           `json:"description"`
	Created     time.Time        `json:"created"`
	Items       []AnswerResponse `json:"items"`
}

func NewRequestResponse(req *itemrequest.ItemRequest) RequestResponse {
	return RequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
		Items:       []AnswerResponse{},
	}
}

func NewRequestViewResponse(v *itemrequest.View) RequestResponse {
	resp := NewRequestResponse(v.Request)
	for _, it := range v.Items {
		resp.Items = append(resp.Items, newAnswerResponse(it))
	}
	return resp
}

func newAnswerResponse(it *item.Item) AnswerResponse {
	resp := AnswerResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
	}
	if it.RequestID != nil {
		resp.RequestID = *it.RequestID
	}
	return resp
}

type CreateRequestRequest struct {
	Description string `json:"description"`
}
