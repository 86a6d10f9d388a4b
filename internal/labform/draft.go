// Package labform turns raw lab-form input into cocktail drafts and drives
// the timed submission sequence that gates committing them.
package labform

import (
	"strings"

	"github.com/khlab/cocktail-lab/internal/models"
)

// Units offered by the amount selector, last entry switching to free input.
var Units = []string{"oz", "ml", "dash", "drop", "tsp", "tbsp", "개", "조각", "직접 입력"}

// CommonIngredients is the pick list shown by the form.
var CommonIngredients = []string{
	"화이트 럼", "다크 럼", "진", "보드카", "위스키", "버번 위스키", "스카치 위스키",
	"테킬라", "브랜디", "코냑", "트리플 섹", "오렌지 리큐르", "블루 큐라소",
	"베르무트", "드라이 베르무트", "스위트 베르무트", "캄파리", "앵거스투라 비터",
	"라임 주스", "레몬 주스", "오렌지 주스", "크랜베리 주스", "파인애플 주스",
	"그레나딘 시럽", "심플 시럽", "설탕", "소다수", "토닉 워터", "진저 에일",
	"민트", "라임", "레몬", "오렌지", "올리브", "체리", "소금",
}

// IngredientInput is one ingredient row of the form.
type IngredientInput struct {
	Name   string
	Amount string
	Unit   string
}

// Form is the raw lab-form state at submission time.
type Form struct {
	Name         string
	Description  string
	Glass        string
	Instructions string
	Image        string
	Ingredients  []IngredientInput
}

// FormatIngredient renders one row as "name amount+unit"; a row without an
// amount is just the name.
func FormatIngredient(ing IngredientInput) string {
	name := strings.TrimSpace(ing.Name)
	amount := strings.TrimSpace(ing.Amount)
	if amount == "" {
		return name
	}
	return name + " " + amount + strings.TrimSpace(ing.Unit)
}

// BuildDraft assembles the submission draft: formatted ingredient strings,
// the glass appended as a pseudo-ingredient, all free-text fields trimmed
// and the description placeholder applied when the field was left blank.
func BuildDraft(form Form) models.CocktailDraft {
	ingredients := make([]string, 0, len(form.Ingredients)+1)
	for _, ing := range form.Ingredients {
		ingredients = append(ingredients, FormatIngredient(ing))
	}
	if glass := strings.TrimSpace(form.Glass); glass != "" {
		ingredients = append(ingredients, glass)
	}
	description := strings.TrimSpace(form.Description)
	if description == "" {
		description = models.DefaultDescription
	}
	return models.CocktailDraft{
		Name:         strings.TrimSpace(form.Name),
		Description:  description,
		Ingredients:  ingredients,
		Instructions: strings.TrimSpace(form.Instructions),
		Image:        form.Image,
	}
}
