package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenbloom/catalog"
	"greenbloom/models"
	"greenbloom/schedule"
)

func loaded(t *testing.T) *Engine {
	t.Helper()
	e := New()
	require.NoError(t, e.Load())
	return e
}

func render(t *testing.T, e *Engine, name string, page *Page, layout ...string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, name, page, layout...))
	return buf.String()
}

func TestRenderBeforeLoad(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, New().Render(&buf, "home", &Page{}))
}

func TestUnknownTemplate(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, loaded(t).Render(&buf, "nope", &Page{}))
	assert.Error(t, loaded(t).Render(&buf, "cart_panel", &Page{Data: CartData{}}, "nolayout"))
}

func TestLayoutWrapsPage(t *testing.T) {
	e := loaded(t)
	out := render(t, e, "shop", &Page{
		Title:     "Shop",
		Active:    "shop",
		Theme:     ThemeDark,
		Season:    "season-spring",
		Notice:    "Cart cleared!",
		CartCount: 3,
		Path:      "/shop",
		Data: ShopData{
			Products:   catalog.Filter(catalog.Products(), models.CategoryTools),
			Categories: models.Categories,
			Active:     models.CategoryTools,
		},
	}, "layout")

	assert.Contains(t, out, `class="season-spring dark-mode"`)
	assert.Contains(t, out, "<title>Shop | GreenBloom Nursery</title>")
	assert.Contains(t, out, `<span class="cart-count">3</span>`)
	assert.Contains(t, out, `<div class="notification" role="status">Cart cleared!</div>`)
	assert.Contains(t, out, "Watering Can")
	assert.Contains(t, out, "$24.99")
	assert.NotContains(t, out, "Gardening Gloves")
	assert.Contains(t, out, `filter-btn active" href="/shop?category=tools">Tools</a>`)
	assert.Contains(t, out, `<input type="hidden" name="back" value="/shop?category=tools">`)
}

func TestFragmentWithoutLayout(t *testing.T) {
	out := render(t, loaded(t), "cart_panel", &Page{Data: CartData{}})
	assert.NotContains(t, out, "<html")
	assert.Contains(t, out, "Your cart is empty")
	assert.Contains(t, out, "$0.00")
}

func TestCartPanel(t *testing.T) {
	p, err := catalog.ProductByID(2)
	require.NoError(t, err)
	out := render(t, loaded(t), "cart_panel", &Page{Data: CartData{
		Lines: []models.CartLine{{Product: p, Quantity: 2}},
		Count: 2,
		Total: 49.98,
	}})
	assert.Contains(t, out, "Watering Can")
	assert.Contains(t, out, `<span class="quantity">2</span>`)
	assert.Contains(t, out, "$49.98")
}

func TestWateringEmptyGarden(t *testing.T) {
	out := render(t, loaded(t), "watering", &Page{Data: WateringData{Empty: true}})
	assert.Contains(t, out, "No plants in your garden.")
	assert.Contains(t, out, "No upcoming reminders.")
	assert.NotContains(t, out, "<table")
}

func TestWateringRowsAndReminders(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	entries := []models.GardenEntry{
		{Plant: models.Plant{Name: "Basil", WateringFrequency: "Daily"}, AddedDate: now, NextWatering: now.Add(-time.Hour)},
		{Plant: models.Plant{Name: "Cactus", WateringFrequency: "Monthly"}, AddedDate: now, NextWatering: now.Add(20 * 24 * time.Hour)},
	}
	out := render(t, loaded(t), "watering", &Page{Data: WateringData{
		Rows:      schedule.Rows(entries, now),
		Reminders: schedule.Reminders(entries, now),
	}})
	assert.Contains(t, out, `<td class="status-urgent">Water Now!</td>`)
	assert.Contains(t, out, `<td class="status-good">On Track</td>`)
	assert.Contains(t, out, "Jun 1, 2026")
	assert.Contains(t, out, "reminder-card reminder-urgent")
	assert.Contains(t, out, "Overdue!")
}

func TestWateringNoReminderInRange(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	entries := []models.GardenEntry{
		{Plant: models.Plant{Name: "Cactus"}, AddedDate: now, NextWatering: now.Add(20 * 24 * time.Hour)},
	}
	out := render(t, loaded(t), "watering", &Page{Data: WateringData{
		Rows:      schedule.Rows(entries, now),
		Reminders: schedule.Reminders(entries, now),
	}})
	assert.Contains(t, out, "No upcoming watering reminders in the next 3 days.")
}

func TestHomeBadgesAndSlides(t *testing.T) {
	plants := []models.Plant{
		{Name: "Monstera", IsNew: true},
		{Name: "Snake Plant", IsPopular: true},
		{Name: "Fiddle Leaf Fig", IsNew: true, IsPopular: true},
	}
	out := render(t, loaded(t), "home", &Page{Data: HomeData{
		Slides:   SlideDelays(catalog.Slides()),
		Featured: plants,
	}})
	assert.Contains(t, out, `<span class="badge badge-New">New</span>`)
	assert.Contains(t, out, `<span class="badge badge-Popular">Popular</span>`)
	assert.Contains(t, out, `<div class="badges"><span class="badge badge-New">New</span><span class="badge badge-Popular">Popular</span></div>`)
	assert.Contains(t, out, "animation-delay: 10s; animation-duration: 15s")
	assert.Contains(t, out, `href="/plants/Snake%20Plant/quick-view"`)
}

func TestHomePlantsError(t *testing.T) {
	out := render(t, loaded(t), "home", &Page{Data: HomeData{PlantsError: catalog.LoadErrorMessage}})
	assert.Contains(t, out, catalog.LoadErrorMessage)
}

func TestQuickView(t *testing.T) {
	out := render(t, loaded(t), "quick_view", &Page{Data: QuickViewData{Plant: models.Plant{Name: "Lavender", Soil: "Sandy"}}})
	assert.Contains(t, out, "Add to My Garden")
	assert.Contains(t, out, `name="name" value="Lavender"`)
	assert.Contains(t, out, "Sandy")
}

func TestChatTranscriptIsEscaped(t *testing.T) {
	out := render(t, loaded(t), "cart", &Page{
		ChatOpen: true,
		Chat:     []models.ChatMessage{{Role: models.RoleUser, Text: "<b>hi</b>"}},
		Data:     CartData{},
	}, "layout")
	assert.Contains(t, out, `<div class="chat-message user"><p>&lt;b&gt;hi&lt;/b&gt;</p></div>`)
}

func TestSlideDelays(t *testing.T) {
	views := SlideDelays(catalog.Slides())
	require.Len(t, views, 3)
	assert.Equal(t, time.Duration(0), views[0].Delay)
	assert.Equal(t, 5*time.Second, views[1].Delay)
	assert.Equal(t, 15*time.Second, views[2].Cycle)
	assert.True(t, views[0].Active)
	assert.False(t, views[1].Active)
}

func TestSeason(t *testing.T) {
	cases := map[time.Month]string{
		time.January:   "season-winter",
		time.March:     "season-spring",
		time.May:       "season-spring",
		time.June:      "season-summer",
		time.August:    "season-summer",
		time.September: "season-autumn",
		time.November:  "season-autumn",
		time.December:  "season-winter",
	}
	for m, want := range cases {
		assert.Equal(t, want, Season(time.Date(2026, m, 10, 0, 0, 0, 0, time.UTC)), m.String())
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "$24.99", Money(24.99))
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "Tools", Title("tools"))
	assert.Equal(t, []string{"Popular"}, Badges(models.Plant{IsPopular: true}))
	assert.Equal(t, []string{"New", "Popular"}, Badges(models.Plant{IsNew: true, IsPopular: true}))
	assert.Empty(t, Badges(models.Plant{}))
}
