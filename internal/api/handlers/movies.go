package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/service"
)

type MovieHandler struct {
	catalog *service.CatalogService
}

func NewMovieHandler(catalog *service.CatalogService) *MovieHandler {
	return &MovieHandler{catalog: catalog}
}

type CreateMovieRequest struct {
	Name          string   `json:"name"`
	Year          int      `json:"year"`
	Time          int      `json:"time"`
	IMDb          float64  `json:"imdb"`
	Votes         int      `json:"votes"`
	MetaScore     *float64 `json:"metaScore"`
	Gross         *float64 `json:"gross"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Certification string   `json:"certification"`
	Genres        []string `json:"genres"`
	Directors     []string `json:"directors"`
	Stars         []string `json:"stars"`
}

type MovieListResponse struct {
	Movies []*domain.Movie `json:"movies"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
}

func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Year == 0 || req.Certification == "" {
		http.Error(w, "Name, year and certification are required", http.StatusBadRequest)
		return
	}

	movie, err := h.catalog.CreateMovie(r.Context(), service.CreateMovieInput{
		Name:          req.Name,
		Year:          req.Year,
		Time:          req.Time,
		IMDb:          req.IMDb,
		Votes:         req.Votes,
		MetaScore:     req.MetaScore,
		Gross:         req.Gross,
		Description:   req.Description,
		Price:         req.Price,
		Certification: req.Certification,
		Genres:        req.Genres,
		Directors:     req.Directors,
		Stars:         req.Stars,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateMovie) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, movie)
}

func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	movie, err := h.catalog.GetMovie(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			http.Error(w, "Movie not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if page < 1 {
		page = 1
	}

	list, err := h.catalog.ListMovies(r.Context(), page, pageSize)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, MovieListResponse{
		Movies: list.Movies,
		Total:  list.Total,
		Page:   page,
	})
}
