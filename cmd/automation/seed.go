package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/techreviewhub/automation/internal/domain"
)

// Default replenishment sets, used when a queue file does not exist yet.
// Editors maintain the real queues through the persisted JSON files.

func defaultReviewJobs() []domain.ContentJob {
	products := []domain.Product{
		{
			Name:     "Apple HomePod Mini",
			Category: "Smart Speaker",
			Price:    "99.99",
			Brand:    "Apple",
			Features: []string{
				"360-degree audio",
				"Siri voice assistant",
				"HomeKit integration",
				"Intercom functionality",
				"Compact design",
			},
		},
		{
			Name:     "Philips Hue Smart Bulb Starter Kit",
			Category: "Smart Lighting",
			Price:    "199.99",
			Brand:    "Philips",
			Features: []string{
				"16 million colors",
				"Voice control compatible",
				"App-controlled dimming",
				"Scheduling and automation",
				"Energy efficient LED",
			},
		},
		{
			Name:     "Arlo Pro 4 Security Camera",
			Category: "Smart Security",
			Price:    "199.99",
			Brand:    "Arlo",
			Features: []string{
				"2K HDR video quality",
				"Wire-free installation",
				"Color night vision",
				"Two-way audio",
				"Smart motion detection",
			},
		},
	}

	jobs := make([]domain.ContentJob, len(products))
	for i := range products {
		p := products[i]
		jobs[i] = domain.ContentJob{
			ID:         uuid.NewString(),
			Kind:       domain.KindReview,
			Title:      p.Name,
			Product:    &p,
			EnqueuedAt: time.Now().UTC(),
		}
	}
	return jobs
}

func defaultArticleJobs() []domain.ContentJob {
	topics := []domain.Topic{
		{
			Title:    "Smart Home Security Systems: Complete Buyer's Guide 2025",
			Keywords: []string{"smart security", "home security", "security cameras", "smart locks"},
		},
		{
			Title:    "Best Smart Speakers for Every Budget in 2025",
			Keywords: []string{"smart speakers", "voice assistants", "Alexa", "Google Assistant"},
		},
		{
			Title:    "How to Create the Perfect Smart Lighting Setup",
			Keywords: []string{"smart lighting", "Philips Hue", "smart bulbs", "home automation"},
		},
		{
			Title:    "Smart Thermostats: Save Money and Energy in 2025",
			Keywords: []string{"smart thermostat", "energy saving", "Nest", "Ecobee"},
		},
	}

	jobs := make([]domain.ContentJob, len(topics))
	for i := range topics {
		t := topics[i]
		jobs[i] = domain.ContentJob{
			ID:         uuid.NewString(),
			Kind:       domain.KindArticle,
			Title:      t.Title,
			Topic:      &t,
			EnqueuedAt: time.Now().UTC(),
		}
	}
	return jobs
}
