package creative

import (
	"fmt"
	"strings"
)

// ScriptType names a video script template.
type ScriptType string

const (
	ScriptUGCTestimonial  ScriptType = "ugc_testimonial"
	ScriptProblemSolution ScriptType = "problem_solution"
	ScriptProductShowcase ScriptType = "product_showcase"
)

// VideoScene is one shot of a script. Scenes play in SceneNumber order.
type VideoScene struct {
	SceneNumber       int    `json:"scene_number"`
	DurationSeconds   int    `json:"duration_seconds"`
	VisualDescription string `json:"visual_description"`
	VoiceoverText     string `json:"voiceover_text"`
	TextOverlay       string `json:"text_overlay"`
	MusicSuggestion   string `json:"music_suggestion"`
}

// VideoScript is a complete short-form video ad script.
type VideoScript struct {
	Type          ScriptType   `json:"type"`
	TotalDuration int          `json:"total_duration"`
	Scenes        []VideoScene `json:"scenes"`
	Platform      string       `json:"platform"`
}

func price(v float64) string { return fmt.Sprintf("$%.2f", v) }

// UGCTestimonial is a 15 second creator-style testimonial for TikTok.
func UGCTestimonial(b Brief) VideoScript {
	return VideoScript{
		Type:          ScriptUGCTestimonial,
		TotalDuration: 15,
		Platform:      "tiktok",
		Scenes: []VideoScene{
			{
				SceneNumber:       1,
				DurationSeconds:   3,
				VisualDescription: "Close-up of person looking excited, holding phone/product",
				VoiceoverText:     fmt.Sprintf("OMG you guys, I finally found the perfect %s!", b.ProductName),
				TextOverlay:       "GAME CHANGER",
				MusicSuggestion:   "Upbeat trending TikTok sound",
			},
			{
				SceneNumber:       2,
				DurationSeconds:   5,
				VisualDescription: "Product demonstration in natural setting",
				VoiceoverText:     "Look at this - it actually works! I've been using it for a week and I'm obsessed.",
				TextOverlay:       "Watch this...",
				MusicSuggestion:   "Continue same track",
			},
			{
				SceneNumber:       3,
				DurationSeconds:   4,
				VisualDescription: "Before/after or results showcase",
				VoiceoverText:     "The difference is insane. Why didn't I get this sooner?",
				TextOverlay:       "THE RESULTS",
				MusicSuggestion:   "Build to climax",
			},
			{
				SceneNumber:       4,
				DurationSeconds:   3,
				VisualDescription: "Person pointing at link, excited expression",
				VoiceoverText:     "Link in bio - trust me, you need this!",
				TextOverlay:       fmt.Sprintf("Only %s - LINK IN BIO", price(b.Price)),
				MusicSuggestion:   "Sound drop/beat",
			},
		},
	}
}

// ProblemSolution is a 30 second hook-problem-solution-CTA script for Facebook.
func ProblemSolution(b Brief) VideoScript {
	pain := b.painPoint(0, "struggling with everyday problems")

	return VideoScript{
		Type:          ScriptProblemSolution,
		TotalDuration: 30,
		Platform:      "facebook",
		Scenes: []VideoScene{
			{
				SceneNumber:       1,
				DurationSeconds:   3,
				VisualDescription: "Person frustrated with current solution",
				VoiceoverText:     fmt.Sprintf("Are you tired of %s?", pain),
				TextOverlay:       "STOP STRUGGLING",
				MusicSuggestion:   "Tense, building music",
			},
			{
				SceneNumber:       2,
				DurationSeconds:   5,
				VisualDescription: "Montage of common frustrations",
				VoiceoverText:     "I used to spend hours dealing with this. Nothing worked. Until I found this.",
				TextOverlay:       "I tried EVERYTHING",
				MusicSuggestion:   "Continue building",
			},
			{
				SceneNumber:       3,
				DurationSeconds:   3,
				VisualDescription: "Product reveal with dramatic lighting",
				VoiceoverText:     fmt.Sprintf("Introducing the %s.", b.ProductName),
				TextOverlay:       strings.ToUpper(b.ProductName),
				MusicSuggestion:   "Music shift - positive, uplifting",
			},
			{
				SceneNumber:       4,
				DurationSeconds:   8,
				VisualDescription: "Product demonstration showing key features",
				VoiceoverText: fmt.Sprintf("It %s. Plus, it %s.",
					b.feature(0, "solves the problem instantly"),
					b.feature(1, "is incredibly easy to use")),
				TextOverlay:     "WATCH THIS",
				MusicSuggestion: "Upbeat, confident",
			},
			{
				SceneNumber:       5,
				DurationSeconds:   5,
				VisualDescription: "Happy customer using product, lifestyle shot",
				VoiceoverText:     "Now I can finally enjoy my day without worrying about this. Life changing.",
				TextOverlay:       "FINALLY!",
				MusicSuggestion:   "Feel-good vibes",
			},
			{
				SceneNumber:       6,
				DurationSeconds:   6,
				VisualDescription: "Product shot with price, CTA overlay",
				VoiceoverText:     fmt.Sprintf("Get yours today for just %s. Limited stock available. Click the link now!", price(b.Price)),
				TextOverlay:       fmt.Sprintf("%s - TAP TO SHOP", price(b.Price)),
				MusicSuggestion:   "Urgency beat",
			},
		},
	}
}

// ProductShowcase is a 15 second product-first reveal for Instagram.
func ProductShowcase(b Brief) VideoScript {
	return VideoScript{
		Type:          ScriptProductShowcase,
		TotalDuration: 15,
		Platform:      "instagram",
		Scenes: []VideoScene{
			{
				SceneNumber:       1,
				DurationSeconds:   2,
				VisualDescription: "Eye-catching product shot, dramatic reveal",
				VoiceoverText:     fmt.Sprintf("This %s is going viral.", b.ProductName),
				TextOverlay:       "TRENDING NOW",
				MusicSuggestion:   "Trending audio hook",
			},
			{
				SceneNumber:       2,
				DurationSeconds:   4,
				VisualDescription: "360-degree product view, highlighting design",
				VoiceoverText:     "Premium quality. Stunning design.",
				TextOverlay:       "PREMIUM QUALITY",
				MusicSuggestion:   "Sleek, modern beat",
			},
			{
				SceneNumber:       3,
				DurationSeconds:   5,
				VisualDescription: "Product in action, demonstrating key feature",
				VoiceoverText:     "And it actually works. See for yourself.",
				TextOverlay:       strings.ToUpper(b.feature(0, "amazing results")),
				MusicSuggestion:   "Build momentum",
			},
			{
				SceneNumber:       4,
				DurationSeconds:   4,
				VisualDescription: "Price reveal with urgency elements",
				VoiceoverText:     fmt.Sprintf("Only %s. Selling fast. Get yours now.", price(b.Price)),
				TextOverlay:       fmt.Sprintf("%s - SHOP NOW", price(b.Price)),
				MusicSuggestion:   "Drop/impact sound",
			},
		},
	}
}

// GenerateAllScripts returns one script per template, in a fixed order.
func GenerateAllScripts(b Brief) []VideoScript {
	return []VideoScript{
		UGCTestimonial(b),
		ProblemSolution(b),
		ProductShowcase(b),
	}
}
