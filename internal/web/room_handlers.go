// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parley Contributors

package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/parleyhq/parley/internal/room"
)

// addRoomRequest is the request body for POST /api/rooms.
type addRoomRequest struct {
	Users []string `json:"users"`
}

// roomResponse is the room shape returned by room endpoints.
type roomResponse struct {
	ID        string       `json:"id"`
	Users     []publicUser `json:"users"`
	CreatedAt time.Time    `json:"createdAt"`
}

// createdRoomResponse is the shape returned after creating a room; members
// are still raw references at that point.
type createdRoomResponse struct {
	ID        string    `json:"id"`
	Users     []string  `json:"users"`
	CreatedAt time.Time `json:"createdAt"`
}

// handleGetRooms returns the caller's rooms with members filtered by the
// optional search query parameter.
func (s *Server) handleGetRooms(w http.ResponseWriter, r *http.Request) {
	sc := SessionFromContext(r.Context())
	if !sc.Present() {
		writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	search := r.URL.Query().Get("search")

	rooms, err := s.roomSvc.ListForUser(r.Context(), sc.Session.UserID, search)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := make([]roomResponse, 0, len(rooms))
	for _, mr := range rooms {
		users := make([]publicUser, 0, len(mr.Members))
		for _, u := range mr.Members {
			users = append(users, publicUser{
				ID:       u.ID.String(),
				Name:     u.Name,
				Email:    u.Email,
				ImageURL: u.ImageURL,
			})
		}
		resp = append(resp, roomResponse{
			ID:        mr.Room.ID.String(),
			Users:     users,
			CreatedAt: mr.Room.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleAddRoom creates a room referencing the given user ids.
func (s *Server) handleAddRoom(w http.ResponseWriter, r *http.Request) {
	sc := SessionFromContext(r.Context())
	if !sc.Present() {
		writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req addRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	created, err := s.roomSvc.Create(r.Context(), req.Users)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, roomToCreatedResponse(created))
}

func roomToCreatedResponse(r *room.Room) createdRoomResponse {
	members := r.MemberIDs
	if members == nil {
		members = []string{}
	}
	return createdRoomResponse{
		ID:        r.ID.String(),
		Users:     members,
		CreatedAt: r.CreatedAt,
	}
}
