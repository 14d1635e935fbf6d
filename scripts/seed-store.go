package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mnazarko/movie-store/internal/auth"
	"github.com/mnazarko/movie-store/internal/config"
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/repository/postgres"
	"github.com/mnazarko/movie-store/internal/service"
)

// Seeds a local database with demo accounts and a small catalog so the API
// can be exercised without going through registration and activation first.

type seedAccount struct {
	email    string
	password string
	group    domain.GroupName
}

var seedAccounts = []seedAccount{
	{"admin@moviestore.local", "Admin123!", domain.GroupAdmin},
	{"moderator@moviestore.local", "Moder123!", domain.GroupModerator},
	{"demo@moviestore.local", "Demo1234!", domain.GroupUser},
}

var seedMovies = []service.CreateMovieInput{
	{
		Name: "The Shawshank Redemption", Year: 1994, Time: 142, IMDb: 9.3, Votes: 2343110,
		Description: "Two imprisoned men bond over a number of years, finding solace and eventual redemption.",
		Price:       12.99, Certification: "R",
		Genres: []string{"Drama"}, Directors: []string{"Frank Darabont"},
		Stars: []string{"Tim Robbins", "Morgan Freeman"},
	},
	{
		Name: "The Dark Knight", Year: 2008, Time: 152, IMDb: 9.0, Votes: 2303232,
		Description: "Batman must accept one of the greatest psychological and physical tests.",
		Price:       9.99, Certification: "PG-13",
		Genres: []string{"Action", "Crime", "Drama"}, Directors: []string{"Christopher Nolan"},
		Stars: []string{"Christian Bale", "Heath Ledger"},
	},
	{
		Name: "Pulp Fiction", Year: 1994, Time: 154, IMDb: 8.9, Votes: 1826188,
		Description: "The lives of two mob hitmen, a boxer, a gangster and his wife intertwine.",
		Price:       7.99, Certification: "R",
		Genres: []string{"Crime", "Drama"}, Directors: []string{"Quentin Tarantino"},
		Stars: []string{"John Travolta", "Uma Thurman", "Samuel L. Jackson"},
	},
	{
		Name: "Spirited Away", Year: 2001, Time: 125, IMDb: 8.6, Votes: 677673,
		Description: "A ten-year-old girl wanders into a world ruled by gods, witches and spirits.",
		Price:       8.49, Certification: "PG",
		Genres: []string{"Animation", "Adventure", "Family"}, Directors: []string{"Hayao Miyazaki"},
		Stars: []string{"Daveigh Chase", "Suzanne Pleshette"},
	},
	{
		Name: "Heat", Year: 1995, Time: 170, IMDb: 8.3, Votes: 645131,
		Description: "A group of high-end professional thieves start to feel the heat from the LAPD.",
		Price:       6.99, Certification: "R",
		Genres: []string{"Action", "Crime", "Drama"}, Directors: []string{"Michael Mann"},
		Stars: []string{"Al Pacino", "Robert De Niro", "Val Kilmer"},
	},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	catalog := service.NewCatalogService(repos.Movie)

	fmt.Println("Seeding accounts...")
	for _, account := range seedAccounts {
		group, err := repos.Account.GetOrCreateGroup(ctx, account.group)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create group %s: %v\n", account.group, err)
			os.Exit(1)
		}

		if _, err := repos.Account.GetUserByEmail(ctx, account.email); err == nil {
			fmt.Printf("  - %s already exists, skipping\n", account.email)
			continue
		}

		hash, err := hasher.Hash(account.password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}

		user := &domain.User{
			Email:        account.email,
			PasswordHash: hash,
			IsActive:     true,
			GroupID:      group.ID,
		}
		if err := db.Create(user).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", account.email, err)
			os.Exit(1)
		}
		fmt.Printf("  ✓ %s (%s)\n", account.email, account.group)
	}

	fmt.Println("\nSeeding catalog...")
	for _, input := range seedMovies {
		movie, err := catalog.CreateMovie(ctx, input)
		if err != nil {
			if err == domain.ErrDuplicateMovie {
				fmt.Printf("  - %s already exists, skipping\n", input.Name)
				continue
			}
			fmt.Fprintf(os.Stderr, "failed to create movie %s: %v\n", input.Name, err)
			os.Exit(1)
		}
		fmt.Printf("  ✓ %s (%d) — $%.2f\n", movie.Name, movie.Year, movie.Price)
	}

	fmt.Println("\n============================================================")
	fmt.Println("SEED COMPLETE")
	fmt.Println("============================================================")
	fmt.Println("\nAccounts (all active, no email activation needed):")
	for _, account := range seedAccounts {
		fmt.Printf("  %-30s %s (%s)\n", account.email, account.password, account.group)
	}
	fmt.Printf("\nLogin: POST http://localhost:%s/api/v1/accounts/login\n", cfg.Port)
	fmt.Printf("Catalog: GET http://localhost:%s/api/v1/movies\n", cfg.Port)
}
