package popular

import (
	"github.com/gofiber/fiber/v2"

	"greenbloom/catalog"
	"greenbloom/models"
)

// HeroSlider returns the home page slides. Relative images are served from
// the static directory.
func HeroSlider(c *fiber.Ctx) error {
	slides := catalog.Slides()
	items := make([]models.Slide, 0, len(slides))
	for _, s := range slides {
		if len(s.Image) > 0 && s.Image[0] == '/' {
			s.Image = "/static" + s.Image
		}
		items = append(items, s)
	}
	return c.JSON(items)
}
