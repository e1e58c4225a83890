package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/session"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

var errUsage = errors.New("wrong arguments, see help")

func sortedKeys(m map[string]command) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func argID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}

func (a *App) credentials() (email, password string, err error) {
	if email, err = prompt(a.in, a.out, "Email"); err != nil {
		return "", "", err
	}
	if password, err = promptPassword(a.out); err != nil {
		return "", "", err
	}
	return email, password, nil
}

func (a *App) printStatus(st session.Status) {
	switch st.State {
	case session.Authenticated:
		fmt.Fprintf(a.out, "Signed in as %s.\n", st.Email)
	case session.Error:
		fmt.Fprintln(a.out, "Error:", st.Message)
	}
}

func (a *App) register(ctx context.Context, _ []string) error {
	name, err := prompt(a.in, a.out, "Name")
	if err != nil {
		return err
	}
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	a.printStatus(a.session.Register(ctx, email, password, name))
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	a.printStatus(a.session.Login(ctx, email, password))
	return nil
}

func (a *App) logout(context.Context, []string) error {
	if err := a.session.SignOut(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) profile(ctx context.Context, _ []string) error {
	u, err := a.api.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\nDaily calorie goal: %.0f kcal\n", u.Name, u.Email, u.DailyCalorieGoal)
	return nil
}

func (a *App) searchRecipes(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	hits, err := a.api.SearchRecipes(ctx, strings.Join(args, " "), 0)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, h := range hits {
		mark := ""
		if h.Bookmarked {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", h.ID, h.Title, mark)
	}
	return tw.Flush()
}

func (a *App) searchIngredients(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	hits, err := a.api.SearchIngredients(ctx, strings.Join(args, " "), 0)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, h := range hits {
		have := ""
		if h.InPantry {
			have = "in pantry"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", h.ID, h.Name, h.Unit, have)
	}
	return tw.Flush()
}

func (a *App) pantry(ctx context.Context, _ []string) error {
	items, err := a.api.Pantry(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Pantry is empty.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%g %s\n", it.ID, it.Name, it.Quantity, it.Unit)
	}
	return tw.Flush()
}

func (a *App) addIngredient(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil || len(args) < 2 {
		return errUsage
	}
	it, err := a.api.AddIngredient(ctx, types.AddIngredientRequest{ID: id, Name: strings.Join(args[1:], " ")})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%g %s).\n", it.Name, it.Quantity, it.Unit)
	return nil
}

func (a *App) updateQuantity(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil || len(args) != 2 {
		return errUsage
	}
	q, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errUsage
	}
	it, err := a.api.UpdateQuantity(ctx, id, q)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %g %s\n", it.Name, it.Quantity, it.Unit)
	return nil
}

func (a *App) removeIngredient(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	if err := a.api.RemoveIngredient(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed.")
	return nil
}

func (a *App) recipe(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	r, err := a.api.Recipe(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%d min, %d servings)\n", r.Title, r.ReadyInMinutes, r.Servings)
	for _, ing := range r.Ingredients {
		fmt.Fprintf(a.out, "  - %g %s %s\n", ing.Amount, ing.Unit, ing.Name)
	}
	for _, step := range r.Instructions {
		fmt.Fprintf(a.out, "  %d. %s\n", step.Number, step.Step)
	}
	a.printNutrients(r.Nutrients)
	return nil
}

func (a *App) toggleBookmark(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	r, err := a.api.ToggleBookmark(ctx, id)
	if err != nil {
		return err
	}
	if r.Bookmarked {
		fmt.Fprintf(a.out, "Bookmarked %s.\n", r.Title)
	} else {
		fmt.Fprintf(a.out, "Removed bookmark from %s.\n", r.Title)
	}
	return nil
}

func (a *App) bookmarks(ctx context.Context, _ []string) error {
	list, err := a.api.Bookmarks(ctx)
	if err != nil {
		return err
	}
	for _, r := range list {
		fmt.Fprintf(a.out, "%d\t%s\n", r.ID, r.Title)
	}
	return nil
}

func (a *App) eat(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	day, err := a.api.Eat(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recorded. Totals for %s:\n", day.Date)
	a.printNutrients(day.Nutrients)
	return nil
}

func (a *App) today(ctx context.Context, _ []string) error {
	day, err := a.api.Today(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n", day.Date)
	for _, link := range day.Recipes {
		title := strconv.FormatInt(link.RecipeID, 10)
		if link.Recipe != nil {
			title = link.Recipe.Title
		}
		fmt.Fprintf(a.out, "  %dx %s\n", link.Amount, title)
	}
	a.printNutrients(day.Nutrients)
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	var from, to string
	if len(args) > 0 {
		from = args[0]
	}
	if len(args) > 1 {
		to = args[1]
	}
	days, err := a.api.History(ctx, from, to)
	if err != nil {
		return err
	}
	for _, d := range days {
		fmt.Fprintf(a.out, "%s\t%s\n", d.Date, calories(d.Nutrients))
	}
	return nil
}

func calories(ns []models.Nutrient) string {
	for _, n := range ns {
		if n.Name == "Calories" {
			return fmt.Sprintf("%.0f %s", n.Amount, n.Unit)
		}
	}
	return "-"
}

func (a *App) printNutrients(ns []models.Nutrient) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, n := range ns {
		fmt.Fprintf(tw, "  %s\t%.1f %s\n", n.Name, n.Amount, n.Unit)
	}
	_ = tw.Flush()
}
