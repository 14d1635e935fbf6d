package domain

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	UUID            uuid.UUID     `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	Name            string        `json:"name" gorm:"size:255;not null;uniqueIndex:unique_movie,priority:1"`
	Year            int           `json:"year" gorm:"not null;uniqueIndex:unique_movie,priority:2"`
	Time            int           `json:"time" gorm:"not null;uniqueIndex:unique_movie,priority:3"`
	IMDb            float64       `json:"imdb" gorm:"not null"`
	Votes           int           `json:"votes" gorm:"not null"`
	MetaScore       *float64      `json:"metaScore"`
	Gross           *float64      `json:"gross"`
	Description     string        `json:"description" gorm:"type:text;not null"`
	Price           float64       `json:"price" gorm:"type:numeric(10,2);not null"`
	CertificationID uint          `json:"certificationId" gorm:"not null"`
	Certification   Certification `json:"certification" gorm:"foreignKey:CertificationID"`
	Genres          []Genre       `json:"genres" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE"`
	Directors       []Director    `json:"directors" gorm:"many2many:movie_directors;constraint:OnDelete:CASCADE"`
	Stars           []Star        `json:"stars" gorm:"many2many:movie_stars;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type Genre struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;uniqueIndex;not null"`
}

type Director struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;uniqueIndex;not null"`
}

type Star struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;uniqueIndex;not null"`
}

type Certification struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;uniqueIndex;not null"`
}
