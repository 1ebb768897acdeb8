package settings_pg_repo

import (
	"context"
	"errors"
	"time"

	"judol_backend/internal/model"
	"judol_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "game_settings"
	colID        = "id"
	colOverride  = "outcome_override"
	colUpdatedAt = "updated_at"

	// Запись настроек всегда одна
	settingsRowID = 1
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSettingsRepository(dbc *pgxpool.Pool) repository.SettingsRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Get - получение текущих настроек игры.
// Возвращает настройки по умолчанию, если записи нет
func (r *repo) Get(ctx context.Context) (model.GameSettings, error) {
	// Формируем запрос
	query := sq.Select(colOverride, colUpdatedAt).
		From(table).
		Where(sq.Eq{colID: settingsRowID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return model.DefaultGameSettings(), err
	}

	var override string
	var updatedAt int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&override, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.DefaultGameSettings(), nil
		}
		return model.DefaultGameSettings(), err
	}

	return model.GameSettings{
		OutcomeOverride: model.OutcomeOverride(override),
		UpdatedAt:       updatedAt,
	}, nil
}

// Set - перезапись настроек игры.
// Если записи нет, создается новая (upsert, запись всегда одна)
func (r *repo) Set(ctx context.Context, settings model.GameSettings) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colOverride, string(settings.OutcomeOverride)).
		Set(colUpdatedAt, settings.UpdatedAt).
		Where(sq.Eq{colID: settingsRowID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	rowsAffected := res.RowsAffected()

	// Если rowsAffected = 0 - то записи не существует и делаем вставку
	if rowsAffected == 0 {
		insertQuery := sq.Insert(table).
			Columns(colID, colOverride, colUpdatedAt).
			Values(settingsRowID, string(settings.OutcomeOverride), settings.UpdatedAt).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err = insertQuery.ToSql()
		if err != nil {
			return err
		}

		_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
	}
	return nil
}

// Init - создание записи по умолчанию, если её не существует
func (r *repo) Init(ctx context.Context) error {
	def := model.DefaultGameSettings()

	// Формируем запрос на вставку, если записи не существует
	query := sq.Insert(table).
		Columns(colID, colOverride, colUpdatedAt).
		Values(settingsRowID, string(def.OutcomeOverride), def.UpdatedAt).
		Suffix("ON CONFLICT (" + colID + ") DO NOTHING").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// ConsumeAndReset - атомарное потребление взведенного оверрайда.
// Внутри транзакции менеджера запись блокируется через FOR UPDATE,
// поэтому оверрайд достается ровно одному из гоняющихся спинов
func (r *repo) ConsumeAndReset(ctx context.Context) (model.OutcomeOverride, error) {
	// Формируем запрос с блокировкой записи
	query := sq.Select(colOverride).
		From(table).
		Where(sq.Eq{colID: settingsRowID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return model.OverrideRNG, err
	}

	var override string
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&override)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OverrideRNG, nil
		}
		return model.OverrideRNG, err
	}

	consumed := model.OutcomeOverride(override)
	if consumed == model.OverrideRNG {
		return model.OverrideRNG, nil
	}

	// Сбрасываем в RNG только если оверрайд все ещё взведен
	updateQuery := sq.Update(table).
		Set(colOverride, string(model.OverrideRNG)).
		Set(colUpdatedAt, time.Now().UnixMilli()).
		Where(sq.Eq{colID: settingsRowID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = updateQuery.ToSql()
	if err != nil {
		return model.OverrideRNG, err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return model.OverrideRNG, err
	}

	return consumed, nil
}
