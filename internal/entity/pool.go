package entity

// Pool is an ordered collection of entities of one kind. Every entity in the
// pool has the pool's kind.
type Pool struct {
	kind   Kind
	items  []Entity
	nextID uint64
}

// NewPool creates an empty pool for kind with room for capacity entities.
func NewPool(kind Kind, capacity int) *Pool {
	return &Pool{
		kind:  kind,
		items: make([]Entity, 0, capacity),
	}
}

// Kind returns the kind of every entity in the pool.
func (p *Pool) Kind() Kind {
	return p.kind
}

// Spawn appends e, stamping the pool kind and a fresh ID. The returned
// pointer is valid until the next Spawn, Prune, Remove or Reset.
func (p *Pool) Spawn(e Entity) *Entity {
	p.nextID++
	e.ID = p.nextID
	e.Kind = p.kind
	p.items = append(p.items, e)
	return &p.items[len(p.items)-1]
}

// Tick applies the kind's update rule to each entity in insertion order.
func (p *Pool) Tick(ctx TickContext) {
	for i := range p.items {
		p.items[i].update(ctx)
	}
}

// Prune removes expired entities, keeping order, and returns how many went.
func (p *Pool) Prune() int {
	kept := p.items[:0]
	for _, e := range p.items {
		if !e.expired() {
			kept = append(kept, e)
		}
	}
	removed := len(p.items) - len(kept)
	clear(p.items[len(kept):])
	p.items = kept
	return removed
}

// Remove deletes the entity with the given ID. It reports whether it was
// present.
func (p *Pool) Remove(id uint64) bool {
	for i := range p.items {
		if p.items[i].ID == id {
			copy(p.items[i:], p.items[i+1:])
			p.items[len(p.items)-1] = Entity{}
			p.items = p.items[:len(p.items)-1]
			return true
		}
	}
	return false
}

// Len returns the number of live entities.
func (p *Pool) Len() int {
	return len(p.items)
}

// At returns the i-th entity in insertion order.
func (p *Pool) At(i int) *Entity {
	return &p.items[i]
}

// Each calls fn for every entity in insertion order. fn must not spawn or
// remove entities.
func (p *Pool) Each(fn func(e *Entity)) {
	for i := range p.items {
		fn(&p.items[i])
	}
}

// Reset drops every entity. IDs keep increasing.
func (p *Pool) Reset() {
	clear(p.items)
	p.items = p.items[:0]
}
