package postgres

import (
	"context"
	"errors"

	"github.com/mnazarko/movie-store/internal/domain"
	"gorm.io/gorm"
)

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *movieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	err := r.db.WithContext(ctx).Create(movie).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateMovie
	}
	return err
}

func (r *movieRepository) GetByID(ctx context.Context, id uint) (*domain.Movie, error) {
	var movie domain.Movie
	err := r.db.WithContext(ctx).
		Preload("Certification").
		Preload("Genres").
		Preload("Directors").
		Preload("Stars").
		First(&movie, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) List(ctx context.Context, limit, offset int) ([]*domain.Movie, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movies []*domain.Movie
	err := r.db.WithContext(ctx).
		Preload("Certification").
		Preload("Genres").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// Lookup tables share the same get-or-create shape as user groups: the
// unique name constraint decides races, losers re-read the winner.

func (r *movieRepository) GetOrCreateGenre(ctx context.Context, name string) (*domain.Genre, error) {
	var genre domain.Genre
	if err := r.getOrCreateByName(ctx, &genre, name, func() any { return &domain.Genre{Name: name} }); err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *movieRepository) GetOrCreateDirector(ctx context.Context, name string) (*domain.Director, error) {
	var director domain.Director
	if err := r.getOrCreateByName(ctx, &director, name, func() any { return &domain.Director{Name: name} }); err != nil {
		return nil, err
	}
	return &director, nil
}

func (r *movieRepository) GetOrCreateStar(ctx context.Context, name string) (*domain.Star, error) {
	var star domain.Star
	if err := r.getOrCreateByName(ctx, &star, name, func() any { return &domain.Star{Name: name} }); err != nil {
		return nil, err
	}
	return &star, nil
}

func (r *movieRepository) GetOrCreateCertification(ctx context.Context, name string) (*domain.Certification, error) {
	var cert domain.Certification
	if err := r.getOrCreateByName(ctx, &cert, name, func() any { return &domain.Certification{Name: name} }); err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *movieRepository) getOrCreateByName(ctx context.Context, dest any, name string, fresh func() any) error {
	err := r.db.WithContext(ctx).First(dest, "name = ?", name).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	created := fresh()
	err = r.db.WithContext(ctx).Create(created).Error
	if err == nil {
		return r.db.WithContext(ctx).First(dest, "name = ?", name).Error
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return r.db.WithContext(ctx).First(dest, "name = ?", name).Error
}
