package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mnazarko/movie-store/internal/api/middleware"
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/service"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddCartItemRequest struct {
	MovieID uint `json:"movieId"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cart, err := h.carts.AddMovie(r.Context(), userID, req.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotFound):
			http.Error(w, "Movie not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrMovieInCart):
			http.Error(w, "Movie is already in the cart", http.StatusConflict)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	movieID, err := strconv.ParseUint(chi.URLParam(r, "movieId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	cart, err := h.carts.RemoveMovie(r.Context(), userID, uint(movieID))
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotInCart) {
			http.Error(w, "Movie is not in the cart", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}
