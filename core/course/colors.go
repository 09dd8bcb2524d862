package course

import (
	"math/rand"
	"strings"
)

type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	// Text is the readable foreground on top of Value.
	Text string `json:"text"`
}

var Colors = []Color{
	{Name: "Indigo", Value: "#4f46e5", Text: "#ffffff"},
	{Name: "Purple", Value: "#7c3aed", Text: "#ffffff"},
	{Name: "Pink", Value: "#ec4899", Text: "#ffffff"},
	{Name: "Red", Value: "#ef4444", Text: "#ffffff"},
	{Name: "Orange", Value: "#f97316", Text: "#ffffff"},
	{Name: "Amber", Value: "#f59e0b", Text: "#ffffff"},
	{Name: "Yellow", Value: "#eab308", Text: "#000000"},
	{Name: "Lime", Value: "#84cc16", Text: "#000000"},
	{Name: "Green", Value: "#10b981", Text: "#ffffff"},
	{Name: "Emerald", Value: "#059669", Text: "#ffffff"},
	{Name: "Teal", Value: "#14b8a6", Text: "#ffffff"},
	{Name: "Cyan", Value: "#06b6d4", Text: "#ffffff"},
	{Name: "Sky", Value: "#0ea5e9", Text: "#ffffff"},
	{Name: "Blue", Value: "#3b82f6", Text: "#ffffff"},
	{Name: "Rose", Value: "#f43f5e", Text: "#ffffff"},
	{Name: "Slate", Value: "#64748b", Text: "#ffffff"},
}

var randIntn = rand.Intn // mockable

// ColorByValue returns the palette entry for the hex value, or the first palette entry.
func ColorByValue(value string) Color {
	for _, c := range Colors {
		if strings.EqualFold(c.Value, value) {
			return c
		}
	}
	return Colors[0]
}

func RandomColor() Color {
	return Colors[randIntn(len(Colors))]
}
