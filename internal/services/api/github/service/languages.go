package service

import (
	"math"
	"sort"

	"gitfolio/internal/services/api/github/domain"
)

// excludedLanguage is dropped from the ranking entirely before percentages
// are computed; stylesheet bytes would otherwise dwarf real code
const excludedLanguage = "CSS"

// defaultColor is used for languages missing from the palette
const defaultColor = "#8b949e"

// languageColors maps language names as GitHub reports them to display colors
var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#3178c6",
	"Python":     "#3572A5",
	"Go":         "#00ADD8",
	"Java":       "#b07219",
	"HTML":       "#e34c26",
	"SCSS":       "#c6538c",
	"Shell":      "#89e051",
	"C":          "#555555",
	"C++":        "#f34b7d",
	"C#":         "#178600",
	"Ruby":       "#701516",
	"PHP":        "#4F5D95",
	"Rust":       "#dea584",
	"Kotlin":     "#A97BFF",
	"Swift":      "#F05138",
	"Dart":       "#00B4AB",
	"Vue":        "#41b883",
	"Svelte":     "#ff3e00",
	"Dockerfile": "#384d54",
}

// rankLanguages derives the top-N ranking from a byte histogram.
// Percentages are computed against the total of the retained languages and
// rounded per entry; a zero total yields zero percentages rather than a
// division error
func rankLanguages(hist map[string]int64, topN int) []domain.LanguageRank {
	ranks := make([]domain.LanguageRank, 0, len(hist))
	var total int64
	for name, bytes := range hist {
		if name == excludedLanguage {
			continue
		}
		ranks = append(ranks, domain.LanguageRank{Name: name, Bytes: bytes})
		total += bytes
	}

	for i := range ranks {
		if total > 0 {
			ranks[i].Percentage = int(math.Round(float64(ranks[i].Bytes) / float64(total) * 100))
		}
		if c, ok := languageColors[ranks[i].Name]; ok {
			ranks[i].Color = c
		} else {
			ranks[i].Color = defaultColor
		}
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Bytes != ranks[j].Bytes {
			return ranks[i].Bytes > ranks[j].Bytes
		}
		return ranks[i].Name < ranks[j].Name
	})

	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	return ranks
}
