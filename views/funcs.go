package views

import (
	"fmt"
	"html/template"
	"net/url"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"greenbloom/models"
	"greenbloom/schedule"
)

// Money formats an amount in dollars with two decimals.
func Money(v float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", v)
}

// Title capitalises each word. A Caser is stateful, so one is made per call.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":      Money,
		"title":      Title,
		"date":       schedule.FormatDate,
		"badges":     Badges,
		"pathEscape": url.PathEscape,
		"add":        func(a, b int) int { return a + b },
		"productCard": func(p models.Product, back string) ProductCard {
			return ProductCard{Product: p, Back: back}
		},
		"categoryTitle": func(c models.Category) string {
			return Title(string(c))
		},
		"seconds": func(d time.Duration) string {
			return fmt.Sprintf("%gs", d.Seconds())
		},
	}
}
