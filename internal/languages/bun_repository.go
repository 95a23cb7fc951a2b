package languages

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-pagebuilder/internal/i18n"
)

var errDatabaseRequired = errors.New("languages: bun repository requires a database")

// BunRepository persists the language table in layout_languages.
type BunRepository struct {
	db     *bun.DB
	events *broadcaster
}

// NewBunRepository constructs a bun backed repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db, events: newBroadcaster()}
}

// Migrate creates the languages table when missing.
func (r *BunRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return errDatabaseRequired
	}
	_, err := r.db.NewCreateTable().Model((*languageModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// List returns the stored languages sorted by code.
func (r *BunRepository) List(ctx context.Context) ([]i18n.Language, error) {
	if r.db == nil {
		return nil, errDatabaseRequired
	}
	var models []languageModel
	if err := r.db.NewSelect().Model(&models).Order("code ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]i18n.Language, 0, len(models))
	for _, model := range models {
		out = append(out, model.language())
	}
	sortByCode(out)
	return out, nil
}

// Upsert inserts or updates the row keyed by the lowercased code.
func (r *BunRepository) Upsert(ctx context.Context, language i18n.Language) (i18n.Language, error) {
	if r.db == nil {
		return i18n.Language{}, errDatabaseRequired
	}
	lang, err := normalize(language)
	if err != nil {
		return i18n.Language{}, err
	}

	var existing languageModel
	err = r.db.NewSelect().Model(&existing).Where("code = ?", key(lang.Code)).Scan(ctx)
	created := false
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return i18n.Language{}, err
		}
		created = true
	}
	if !created && existing.language() == lang {
		return lang, nil
	}

	model := languageModel{
		Code:      key(lang.Code),
		Label:     lang.Code,
		Name:      lang.Name,
		UpdatedAt: time.Now().UTC(),
	}
	if created {
		_, err = r.db.NewInsert().Model(&model).Exec(ctx)
	} else {
		_, err = r.db.NewUpdate().Model(&model).Column("label", "name", "updated_at").WherePK().Exec(ctx)
	}
	if err != nil {
		return i18n.Language{}, err
	}

	changeType := ChangeUpdated
	if created {
		changeType = ChangeCreated
	}
	r.events.publish(newChangeEvent(changeType, lang))
	return lang, nil
}

// Delete removes the row for code.
func (r *BunRepository) Delete(ctx context.Context, code string) error {
	if r.db == nil {
		return errDatabaseRequired
	}
	var model languageModel
	if err := r.db.NewSelect().Model(&model).Where("code = ?", key(code)).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLanguageNotFound
		}
		return err
	}
	if _, err := r.db.NewDelete().Model(&model).WherePK().Exec(ctx); err != nil {
		return err
	}
	r.events.publish(newChangeEvent(ChangeDeleted, model.language()))
	return nil
}

// Subscribe delivers change events until ctx is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.events.subscribe(ctx)
}

type languageModel struct {
	bun.BaseModel `bun:"table:layout_languages"`

	Code      string    `bun:"code,pk"`
	Label     string    `bun:"label,notnull"`
	Name      string    `bun:"name"`
	UpdatedAt time.Time `bun:"updated_at"`
}

func (m languageModel) language() i18n.Language {
	return i18n.Language{Code: m.Label, Name: m.Name}
}
