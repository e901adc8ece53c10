package persona

import (
	"fmt"

	"car-persona-ai-bot/internal/gemini"
)

// Identification wants factual consistency, persona synthesis wants variety.
const (
	identificationTemperature = 0.1
	personaTemperature        = 0.8
)

const identificationInstruction = `You are a precise vehicle identification expert. Analyze the car in the image(s) and answer with only a JSON object in this exact format:

{
  "isCar": true,
  "candidates": [
    {
      "model": "the most likely car model name, including the generation",
      "confidence": 95,
      "priceRange": "estimated price range when new",
      "releasePeriod": "years this model was sold",
      "features": "key features of this car"
    }
  ]
}

Rules:
1. First decide whether the image contains a car. If it does not, set "isCar" to false and every other field to null.
2. "confidence" is your certainty as a percentage from 0 to 100. Be honest and lower the score when the image is blurry or ambiguous. Never just repeat the example value 95.
3. If your confidence in the first candidate is below 90, add a second candidate to "candidates".`

// BuildIdentificationRequest produces the stage-1 request. Multiple images are
// attached as extra inline parts so album uploads sharpen the identification.
func BuildIdentificationRequest(images []gemini.ImageInput) gemini.Request {
	parts := make([]gemini.Part, 0, len(images)+1)
	parts = append(parts, gemini.Part{Text: identificationInstruction})
	for _, img := range images {
		parts = append(parts, gemini.Part{InlineData: &gemini.Blob{
			Data:     img.DataBase64,
			MimeType: img.MimeType,
		}})
	}

	return gemini.Request{
		Contents: []gemini.Content{{Role: "user", Parts: parts}},
		GenerationConfig: gemini.GenerationConfig{
			Temperature:      identificationTemperature,
			ResponseMimeType: "application/json",
		},
	}
}

const personaInstructionFormat = `You are a "CarBTI" expert who reads a person's persona from their car, mixing humor and memes. A %q has been identified. Describe the persona of the person driving it, creatively and wittily, as only a JSON object in this exact format:

{
  "verdict": {
    "carReview": "a witty one-line review of the car itself",
    "ownerWealthHint": "a playful hint at the owner's wealth based on the car's price range; stay positive and never mock an affordable car"
  },
  "lifestyle": {
    "playlist": "the music most likely playing in this car",
    "weekendHaunts": "where this car shows up on weekends",
    "instagramFeed": "what the owner's Instagram feed probably looks like"
  },
  "vibe": {
    "fashionStyle": "the fashion the owner probably wears",
    "carScent": "the scent or air freshener inside the car",
    "goToCoffee": "the owner's usual coffee order"
  },
  "memeIndex": {
    "showOff": 3,
    "reckless": 3,
    "jealousy": 3,
    "success": 3,
    "family": 3
  }
}

Every memeIndex score is an integer from 1 to 5: showOff for ostentation, reckless for wild driving, jealousy for how envy-inducing the car is, success for success signaling, family for family orientation.`

// Humor about wealth and driving habits trips mid-level filters, so the
// persona call relaxes them to high-only blocking.
var personaSafetySettings = []gemini.SafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"},
}

// BuildPersonaRequest produces the stage-2 request for an identified model
// name. The caller is responsible for carModel being non-empty.
func BuildPersonaRequest(carModel string) gemini.Request {
	return gemini.Request{
		Contents: []gemini.Content{{
			Role:  "user",
			Parts: []gemini.Part{{Text: fmt.Sprintf(personaInstructionFormat, carModel)}},
		}},
		GenerationConfig: gemini.GenerationConfig{
			Temperature:      personaTemperature,
			ResponseMimeType: "application/json",
		},
		SafetySettings: personaSafetySettings,
	}
}
