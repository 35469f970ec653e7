package service

import (
	"time"

	"siembra-valores-api/internal/repo"
)

// The aggregator folds flat left-join row sets into the nested shapes
// the client consumes. Grouping is by id (users, then plants within a
// user); output order is first-occurrence order in the input and
// nothing is sorted, so equal inputs always produce equal trees.

type HistoryEntry struct {
	HistorialID         string    `json:"historial_id"`
	ServicioID          uint      `json:"servicio_id"`
	Fecha               time.Time `json:"fecha"`
	ServicioName        string    `json:"servicio_name"`
	ServicioDescription string    `json:"servicio_description"`
}

type PlantTree struct {
	PlantaID    string         `json:"planta_id"`
	PlantaName  string         `json:"planta_name"`
	Historiales []HistoryEntry `json:"historiales"`
}

type UserTree struct {
	UserID    string      `json:"user_id"`
	UserName  string      `json:"user_name"`
	UserEmail string      `json:"user_email"`
	Plantas   []PlantTree `json:"plantas"`
}

type PlantDetail struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Historiales []HistoryEntry `json:"historiales"`
}

// BuildUserTrees groups the full overview join into user → plantas →
// historiales. Rows with null plant columns contribute the user only
// (a user without plants gets an empty plantas list); a history entry
// is emitted exactly when the historial id is non-null.
func BuildUserTrees(rows []repo.OverviewRow) []UserTree {
	users := make([]UserTree, 0)
	userIdx := make(map[string]int)
	plantIdx := make(map[string]int) // plant ids are globally unique

	for _, row := range rows {
		ui, ok := userIdx[row.UserID]
		if !ok {
			ui = len(users)
			userIdx[row.UserID] = ui
			users = append(users, UserTree{
				UserID:    row.UserID,
				UserName:  row.UserName,
				UserEmail: row.UserEmail,
				Plantas:   make([]PlantTree, 0),
			})
		}

		if row.PlantaID == nil {
			continue
		}

		pi, ok := plantIdx[*row.PlantaID]
		if !ok {
			pi = len(users[ui].Plantas)
			plantIdx[*row.PlantaID] = pi
			users[ui].Plantas = append(users[ui].Plantas, PlantTree{
				PlantaID:    *row.PlantaID,
				PlantaName:  deref(row.PlantaName),
				Historiales: make([]HistoryEntry, 0),
			})
		}

		if row.HistorialID == nil {
			continue
		}
		users[ui].Plantas[pi].Historiales = append(users[ui].Plantas[pi].Historiales, HistoryEntry{
			HistorialID:         *row.HistorialID,
			ServicioID:          derefUint(row.ServicioID),
			Fecha:               derefTime(row.Fecha),
			ServicioName:        deref(row.ServicioName),
			ServicioDescription: deref(row.ServicioDescription),
		})
	}
	return users
}

// BuildPlantDetail folds the single-plant join. ok is false when the
// row set is empty, which the caller reports as not found; a plant
// with no history still yields ok with an empty historiales list.
func BuildPlantDetail(rows []repo.HistoryRow) (PlantDetail, bool) {
	if len(rows) == 0 {
		return PlantDetail{}, false
	}
	detail := PlantDetail{
		ID:          rows[0].PlantaID,
		Name:        rows[0].PlantaName,
		Historiales: make([]HistoryEntry, 0),
	}
	for _, row := range rows {
		if row.HistorialID == nil {
			continue
		}
		detail.Historiales = append(detail.Historiales, HistoryEntry{
			HistorialID:         *row.HistorialID,
			ServicioID:          derefUint(row.ServicioID),
			Fecha:               derefTime(row.Fecha),
			ServicioName:        deref(row.ServicioName),
			ServicioDescription: deref(row.ServicioDescription),
		})
	}
	return detail, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefUint(v *uint) uint {
	if v == nil {
		return 0
	}
	return *v
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
