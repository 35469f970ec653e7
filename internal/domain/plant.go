package domain

// Plant belongs to one user and accumulates an append-only service
// history. There is no edit endpoint; plants are created and deleted
// whole.
type Plant struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Name      string `gorm:"size:120;not null" json:"name"`
	UsuarioID string `gorm:"size:36;not null;index" json:"usuario_id"`
}

func (Plant) TableName() string { return "plantas" }
