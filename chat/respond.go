package chat

import "strings"

// Fallback is sent when no topic matches.
const Fallback = "I'm here to help with plant care! Ask me about watering, sunlight, fertilizer, pests, or repotting."

type topic struct {
	keyword string
	// stems also select the topic, so "water" finds the watering answer.
	stems  []string
	answer string
}

// Topics are scanned in this order; the first match wins.
var topics = []topic{
	{
		keyword: "watering",
		stems:   []string{"water"},
		answer:  "Most plants need watering when the top inch of soil is dry. Stick your finger in the soil to check!",
	},
	{
		keyword: "sunlight",
		stems:   []string{"sun", "light"},
		answer:  "Different plants need different light conditions. Check the plant care instructions for specific needs.",
	},
	{
		keyword: "fertilizer",
		stems:   []string{"fertiliz", "fertilis"},
		answer:  "Fertilize during growing season (spring/summer). Use organic fertilizers for best results.",
	},
	{
		keyword: "pests",
		stems:   []string{"pest"},
		answer:  "For common pests, try neem oil solution. Isolate affected plants to prevent spreading.",
	},
	{
		keyword: "repotting",
		stems:   []string{"repot"},
		answer:  "Repot when roots outgrow the container, typically every 1-2 years in spring.",
	},
}

func (t topic) matches(msg string) bool {
	if strings.Contains(msg, t.keyword) {
		return true
	}
	for _, s := range t.stems {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// Respond picks the scripted answer for an already normalised message.
func Respond(msg string) string {
	for _, t := range topics {
		if t.matches(msg) {
			return t.answer
		}
	}
	return Fallback
}

// Keywords lists the topic keywords in match order.
func Keywords() []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		out = append(out, t.keyword)
	}
	return out
}
