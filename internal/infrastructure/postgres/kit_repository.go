package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.KitRepository = (*KitRepo)(nil)

// KitRepo implementación de KitRepository sobre PostgreSQL (usable con pool o tx).
type KitRepo struct {
	q Querier
}

// NewKitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKitRepository(q Querier) *KitRepo {
	return &KitRepo{q: q}
}

// ListByKit devuelve los componentes del kit ordenados por posición.
func (r *KitRepo) ListByKit(kitID int64) ([]entity.KitComponent, error) {
	query := `
		SELECT kit_id, component_id, qty_per_kit, position
		FROM kit_components WHERE kit_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, kitID)
	if err != nil {
		return nil, fmt.Errorf("list kit components: %w", err)
	}
	defer rows.Close()

	var list []entity.KitComponent
	for rows.Next() {
		var c entity.KitComponent
		if err := rows.Scan(&c.KitID, &c.ComponentID, &c.QtyPerKit, &c.Position); err != nil {
			return nil, fmt.Errorf("scan kit component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ReplaceComponents sustituye la composición completa del kit.
func (r *KitRepo) ReplaceComponents(kitID int64, components []entity.KitComponent) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM kit_components WHERE kit_id = $1`, kitID); err != nil {
		return fmt.Errorf("clear kit components: %w", err)
	}
	query := `
		INSERT INTO kit_components (kit_id, component_id, qty_per_kit, position)
		VALUES ($1, $2, $3, $4)`
	for _, c := range components {
		if _, err := r.q.Exec(ctx, query, kitID, c.ComponentID, c.QtyPerKit, c.Position); err != nil {
			return fmt.Errorf("insert kit component: %w", err)
		}
	}
	return nil
}

// DeleteByKit elimina la composición del kit.
func (r *KitRepo) DeleteByKit(kitID int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM kit_components WHERE kit_id = $1`, kitID)
	if err != nil {
		return fmt.Errorf("delete kit components: %w", err)
	}
	return nil
}

// ListKitsByComponent devuelve los IDs de los kits que referencian al producto.
func (r *KitRepo) ListKitsByComponent(componentID int64) ([]int64, error) {
	query := `SELECT kit_id FROM kit_components WHERE component_id = $1 ORDER BY kit_id`
	rows, err := r.q.Query(context.Background(), query, componentID)
	if err != nil {
		return nil, fmt.Errorf("list kits by component: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan kit id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteByComponent quita el producto de todos los kits que lo referencian.
func (r *KitRepo) DeleteByComponent(componentID int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM kit_components WHERE component_id = $1`, componentID)
	if err != nil {
		return fmt.Errorf("delete kit memberships: %w", err)
	}
	return nil
}
