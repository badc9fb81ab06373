package tracker

import (
	"context"
	"maps"

	"github.com/manav03panchal/daybook/internal/logging"
	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/storage"
	"github.com/manav03panchal/daybook/internal/validate"
)

// ListProjects returns the registered project names in ascending order.
func (s *Service) ListProjects(ctx context.Context) ([]string, error) {
	return s.ListLabels(ctx, model.KindProject)
}

// AddProject registers a project and returns the updated list.
func (s *Service) AddProject(ctx context.Context, name string) ([]string, error) {
	return s.AddLabel(ctx, model.KindProject, name)
}

// SyncProjects merges names into the project registry and returns the result.
func (s *Service) SyncProjects(ctx context.Context, names []string) ([]string, error) {
	return s.SyncLabels(ctx, model.KindProject, names)
}

// ListCategories returns the registered category names in ascending order.
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.ListLabels(ctx, model.KindCategory)
}

// AddCategory registers a category and returns the updated list.
func (s *Service) AddCategory(ctx context.Context, name string) ([]string, error) {
	return s.AddLabel(ctx, model.KindCategory, name)
}

// SyncCategories merges names into the category registry and returns the result.
func (s *Service) SyncCategories(ctx context.Context, names []string) ([]string, error) {
	return s.SyncLabels(ctx, model.KindCategory, names)
}

// SetProjectColor overrides the colour of a project.
func (s *Service) SetProjectColor(ctx context.Context, name, color string) (model.LabelColor, error) {
	return s.SetColor(ctx, model.KindProject, name, color)
}

// SetCategoryColor overrides the colour of a category.
func (s *Service) SetCategoryColor(ctx context.Context, name, color string) (model.LabelColor, error) {
	return s.SetColor(ctx, model.KindCategory, name, color)
}

// ListLabels returns the names registered under kind, assigning any missing colours.
func (s *Service) ListLabels(ctx context.Context, kind model.LabelKind) ([]string, error) {
	var names []string
	err := s.editSettings(ctx, func(st *model.Settings) bool {
		changed := s.assignMissing(st, kind)
		names = append([]string{}, st.Names(kind)...)
		return changed
	})
	return names, err
}

// AddLabel registers name under kind. Adding a registered name changes nothing.
func (s *Service) AddLabel(ctx context.Context, kind model.LabelKind, name string) ([]string, error) {
	name = validate.SanitizeName(name)
	if err := validate.LabelName(string(kind), name); err != nil {
		return nil, err
	}

	var names []string
	err := s.editSettings(ctx, func(st *model.Settings) bool {
		added := st.Register(kind, name)
		assigned := s.assignMissing(st, kind)
		names = append([]string{}, st.Names(kind)...)
		if added {
			logging.FromContext(ctx).Info("label added", "kind", kind, "name", name, "color", st.Colors(kind)[name])
		}
		return added || assigned
	})
	return names, err
}

// SyncLabels unions names with the registry of kind. Empty names are ignored.
func (s *Service) SyncLabels(ctx context.Context, kind model.LabelKind, names []string) ([]string, error) {
	clean := validate.SanitizeNames(names)
	for _, n := range clean {
		if err := validate.LabelName(string(kind), n); err != nil {
			return nil, err
		}
	}

	var result []string
	err := s.editSettings(ctx, func(st *model.Settings) bool {
		added := st.Register(kind, clean...)
		assigned := s.assignMissing(st, kind)
		result = append([]string{}, st.Names(kind)...)
		return added || assigned
	})
	return result, err
}

// GetAllColors returns both colour mappings, assigning any missing colours
// (projects first, then categories).
func (s *Service) GetAllColors(ctx context.Context) (model.ColorSet, error) {
	var set model.ColorSet
	err := s.editSettings(ctx, func(st *model.Settings) bool {
		p := s.assignMissing(st, model.KindProject)
		c := s.assignMissing(st, model.KindCategory)
		set = model.ColorSet{
			ProjectColors:  maps.Clone(st.ProjectColors),
			CategoryColors: maps.Clone(st.CategoryColors),
		}
		return p || c
	})
	return set, err
}

// SetColor forces the colour of name under kind, registering the name if needed.
func (s *Service) SetColor(ctx context.Context, kind model.LabelKind, name, color string) (model.LabelColor, error) {
	name = validate.SanitizeName(name)
	if err := validate.LabelName(string(kind), name); err != nil {
		return model.LabelColor{}, err
	}
	color = validate.NormalizeColor(color)
	if err := validate.HexColor(color); err != nil {
		return model.LabelColor{}, err
	}

	err := s.editSettings(ctx, func(st *model.Settings) bool {
		st.Register(kind, name)
		st.Colors(kind)[name] = color
		return true
	})
	if err != nil {
		return model.LabelColor{}, err
	}

	logging.FromContext(ctx).Info("label color set", "kind", kind, "name", name, "color", color)
	return model.LabelColor{Name: name, Color: color}, nil
}

// editSettings loads the settings record, applies fn and saves the record when
// fn reports a change.
func (s *Service) editSettings(ctx context.Context, fn func(*model.Settings) bool) error {
	return s.store.Update(ctx, func(txn storage.Txn) error {
		repo := storage.Settings(txn)
		st, err := repo.Load()
		if err != nil {
			return err
		}
		if !fn(st) {
			return nil
		}
		return repo.Save(st)
	})
}

// registerLabels records an entry's project and category inside txn.
func (s *Service) registerLabels(txn storage.Txn, project, category string) error {
	repo := storage.Settings(txn)
	st, err := repo.Load()
	if err != nil {
		return err
	}
	changed := st.Register(model.KindProject, project)
	changed = st.Register(model.KindCategory, category) || changed
	changed = s.assignMissing(st, model.KindProject) || changed
	changed = s.assignMissing(st, model.KindCategory) || changed
	if !changed {
		return nil
	}
	return repo.Save(st)
}

// assignMissing gives every colourless name of kind a colour, in ascending name
// order, and reports whether any was assigned.
func (s *Service) assignMissing(st *model.Settings, kind model.LabelKind) bool {
	missing := st.Uncolored(kind)
	own := st.Colors(kind)
	other := st.Colors(kind.Opposite())
	for _, name := range missing {
		own[name] = s.palette.Assign(own, other)
	}
	return len(missing) > 0
}
