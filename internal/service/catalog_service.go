package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/repository"
)

type CatalogService struct {
	movieRepo repository.MovieRepository
}

func NewCatalogService(movieRepo repository.MovieRepository) *CatalogService {
	return &CatalogService{movieRepo: movieRepo}
}

type CreateMovieInput struct {
	Name          string
	Year          int
	Time          int
	IMDb          float64
	Votes         int
	MetaScore     *float64
	Gross         *float64
	Description   string
	Price         float64
	Certification string
	Genres        []string
	Directors     []string
	Stars         []string
}

type MovieList struct {
	Movies []*domain.Movie
	Total  int64
}

func (s *CatalogService) CreateMovie(ctx context.Context, input CreateMovieInput) (*domain.Movie, error) {
	cert, err := s.movieRepo.GetOrCreateCertification(ctx, input.Certification)
	if err != nil {
		return nil, err
	}

	genres := make([]domain.Genre, 0, len(input.Genres))
	for _, name := range input.Genres {
		genre, err := s.movieRepo.GetOrCreateGenre(ctx, name)
		if err != nil {
			return nil, err
		}
		genres = append(genres, *genre)
	}

	directors := make([]domain.Director, 0, len(input.Directors))
	for _, name := range input.Directors {
		director, err := s.movieRepo.GetOrCreateDirector(ctx, name)
		if err != nil {
			return nil, err
		}
		directors = append(directors, *director)
	}

	stars := make([]domain.Star, 0, len(input.Stars))
	for _, name := range input.Stars {
		star, err := s.movieRepo.GetOrCreateStar(ctx, name)
		if err != nil {
			return nil, err
		}
		stars = append(stars, *star)
	}

	movie := &domain.Movie{
		UUID:            uuid.New(),
		Name:            input.Name,
		Year:            input.Year,
		Time:            input.Time,
		IMDb:            input.IMDb,
		Votes:           input.Votes,
		MetaScore:       input.MetaScore,
		Gross:           input.Gross,
		Description:     input.Description,
		Price:           input.Price,
		CertificationID: cert.ID,
		Genres:          genres,
		Directors:       directors,
		Stars:           stars,
	}

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *CatalogService) GetMovie(ctx context.Context, id uint) (*domain.Movie, error) {
	return s.movieRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListMovies(ctx context.Context, page, pageSize int) (*MovieList, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	movies, total, err := s.movieRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &MovieList{Movies: movies, Total: total}, nil
}
