package catalog

import "github.com/magabrotheeeer/vtv-streaming/internal/models"

// SeedContent возвращает стартовый каталог витрины.
func SeedContent() []models.ContentItem {
	return []models.ContentItem{
		{
			ID:           "1",
			Title:        "Cyber Africa",
			Description:  "In a futuristic Lagos, a young hacker discovers a conspiracy that threatens the entire continent.",
			Category:     "Science-fiction",
			ThumbnailURL: "https://picsum.photos/seed/cyber/300/450",
			Duration:     120,
			ReleaseYear:  2024,
			Cast:         []string{"John Doe", "Jane Smith"},
		},
		{
			ID:           "2",
			Title:        "Savannah Kings",
			Description:  "A documentary following the life of a lion pride in the Serengeti.",
			Category:     "Documentaires films",
			ThumbnailURL: "https://picsum.photos/seed/lion/300/450",
			IsSeries:     true,
			Episodes: []models.Episode{
				{ID: "e1", Title: "The Beginning", Duration: 45},
				{ID: "e2", Title: "Survival", Duration: 48},
			},
			ReleaseYear: 2023,
		},
		{
			ID:           "3",
			Title:        "Neon Nights",
			Description:  "A thriller set in the underground racing scene of Tokyo.",
			Category:     "Action",
			ThumbnailURL: "https://picsum.photos/seed/cars/300/450",
			Duration:     110,
			ReleaseYear:  2024,
		},
	}
}
