// Package rest is the thin query/mutation adapter over the resolver.
// It only decodes requests, delegates, and encodes results; every
// domain decision happens in the core.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"roomchat/contract"
	"roomchat/domain"
	"roomchat/errors"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

type Handler struct {
	resolver contract.IResolver
	validate *validator.Validate
	log      *slog.Logger
}

func NewHandler(resolver contract.IResolver, log *slog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		validate: validator.New(),
		log:      log,
	}
}

// Register wires the resolver operations onto the router.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/hello", h.Hello).Methods(http.MethodGet)
	router.HandleFunc("/rooms", h.ListRooms).Methods(http.MethodGet)
	router.HandleFunc("/rooms", h.CreateRoom).Methods(http.MethodPost)
	router.HandleFunc("/rooms/name/{name}", h.RoomByName).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{id}", h.RoomByID).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{id}/messages", h.SendMessage).Methods(http.MethodPost)
	router.HandleFunc("/users", h.GetOrCreateUser).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", h.UserByID).Methods(http.MethodGet)
}

type createRoomRequest struct {
	Name string `json:"name" validate:"required"`
}

type userRequest struct {
	Name string `json:"name" validate:"required"`
}

type sendMessageRequest struct {
	SenderID string `json:"senderId" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type messageResponse struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Sender    userResponse `json:"sender"`
	Timestamp string       `json:"timestamp"`
}

type roomResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Messages []messageResponse `json:"messages"`
}

type helloResponse struct {
	Hello string `json:"hello"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Hello(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, helloResponse{Hello: h.resolver.Hello()})
}

func (h *Handler) ListRooms(w http.ResponseWriter, _ *http.Request) {
	rooms := h.resolver.ChatRooms()
	h.writeJSON(w, http.StatusOK, lo.Map(rooms, func(room domain.Room, _ int) roomResponse {
		return toRoomResponse(room)
	}))
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !h.decode(w, r, &req) {
		return
	}
	room, err := h.resolver.CreateChatRoom(req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (h *Handler) RoomByName(w http.ResponseWriter, r *http.Request) {
	room, err := h.resolver.ChatRoomByName(mux.Vars(r)["name"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toRoomResponse(room))
}

func (h *Handler) RoomByID(w http.ResponseWriter, r *http.Request) {
	room, err := h.resolver.ChatRoomByID(domain.RoomID(mux.Vars(r)["id"]))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toRoomResponse(room))
}

func (h *Handler) GetOrCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !h.decode(w, r, &req) {
		return
	}
	user := h.resolver.User(req.Name)
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) UserByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolver.UserByID(domain.UserID(mux.Vars(r)["id"]))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !h.decode(w, r, &req) {
		return
	}
	message, err := h.resolver.SendMessage(r.Context(),
		domain.RoomID(mux.Vars(r)["id"]), domain.UserID(req.SenderID), req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toMessageResponse(message))
}

// decode unmarshals the body into req and validates it. On failure it
// writes a 400 response and reports false so the caller can return.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, errors.MapToStatusCode(err), errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func toRoomResponse(room domain.Room) roomResponse {
	return roomResponse{
		ID:   string(room.ID),
		Name: room.Name,
		Messages: lo.Map(room.Messages, func(item domain.Message, _ int) messageResponse {
			return toMessageResponse(item)
		}),
	}
}

func toMessageResponse(message domain.Message) messageResponse {
	return messageResponse{
		ID:        string(message.ID),
		Text:      message.Text,
		Sender:    toUserResponse(message.Sender),
		Timestamp: message.Timestamp.Format(time.RFC3339Nano),
	}
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:   string(user.ID),
		Name: user.Name,
	}
}
