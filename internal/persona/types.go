package persona

type CarCandidate struct {
	Model         string `json:"model"`
	Confidence    int    `json:"confidence"`
	PriceRange    string `json:"priceRange"`
	ReleasePeriod string `json:"releasePeriod"`
	Features      string `json:"features"`
}

// Identification is the decoded result of the first pipeline stage. When IsCar
// is false, Candidates is empty.
type Identification struct {
	IsCar      bool           `json:"isCar"`
	Candidates []CarCandidate `json:"candidates"`
}

type Verdict struct {
	CarReview       string `json:"carReview"`
	OwnerWealthHint string `json:"ownerWealthHint"`
}

type Lifestyle struct {
	Playlist      string `json:"playlist"`
	WeekendHaunts string `json:"weekendHaunts"`
	InstagramFeed string `json:"instagramFeed"`
}

type Vibe struct {
	FashionStyle string `json:"fashionStyle"`
	CarScent     string `json:"carScent"`
	GoToCoffee   string `json:"goToCoffee"`
}

// MemeIndex holds the five 1-5 stereotype scores rendered as a radar chart by
// clients.
type MemeIndex struct {
	ShowOff  int `json:"showOff"`
	Reckless int `json:"reckless"`
	Jealousy int `json:"jealousy"`
	Success  int `json:"success"`
	Family   int `json:"family"`
}

// Persona is the decoded result of the second pipeline stage.
type Persona struct {
	Verdict   Verdict   `json:"verdict"`
	Lifestyle Lifestyle `json:"lifestyle"`
	Vibe      Vibe      `json:"vibe"`
	MemeIndex MemeIndex `json:"memeIndex"`
}

// Analysis is the caller-visible union of both stages. The persona sections
// are pointers so the not-a-car variant serializes to exactly {"isCar":false}.
type Analysis struct {
	IsCar      bool           `json:"isCar"`
	Candidates []CarCandidate `json:"candidates,omitempty"`
	Verdict    *Verdict       `json:"verdict,omitempty"`
	Lifestyle  *Lifestyle     `json:"lifestyle,omitempty"`
	Vibe       *Vibe          `json:"vibe,omitempty"`
	MemeIndex  *MemeIndex     `json:"memeIndex,omitempty"`
}
