package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumMovies int           // Number of movies to add and remove
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	LogFile   string        // Log file for run output
	Verbose   bool          // Log every request
}

// Movie mirrors the REST movie body.
type Movie struct {
	Title   string  `json:"title"`
	Genre   string  `json:"genre"`
	Rating  float64 `json:"rating"`
	Runtime int     `json:"runtime"`
}

// DieRoll mirrors the REST roll body.
type DieRoll struct {
	Total int   `json:"total"`
	Sides int   `json:"sides"`
	Rolls []int `json:"rolls"`
}

// Stats holds run statistics.
type Stats struct {
	InitialCount   int
	MoviesAdded    int
	MoviesFailed   int
	MoviesRemoved  int
	RollsChecked   int
	GenresVerified int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
