package models

// Slide is one image of the home page hero slideshow.
type Slide struct {
	ID      int    `json:"id"`
	Image   string `json:"image"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}
