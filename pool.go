package rgbmon

import (
	"context"

	"github.com/jackc/puddle/v2"
)

// connPool owns the session's zero-or-one live connection as a size-1
// resource pool. The connection is constructed lazily on first acquire;
// destroying the resource after an I/O failure returns the session to the
// disconnected state, and the next acquire dials anew.
type connPool struct {
	pool *puddle.Pool[*Connection]
}

func newConnPool(dial func(ctx context.Context) (*Connection, error)) (*connPool, error) {
	pool, err := puddle.NewPool(&puddle.Config[*Connection]{
		Constructor: dial,
		Destructor: func(c *Connection) {
			_ = c.Close()
		},
		MaxSize: 1,
	})
	if err != nil {
		return nil, err
	}
	return &connPool{pool: pool}, nil
}

func (p *connPool) acquire(ctx context.Context) (*puddle.Resource[*Connection], error) {
	return p.pool.Acquire(ctx)
}

// reset drops the live connection, if any. Resources currently acquired
// are destroyed on release.
func (p *connPool) reset() {
	p.pool.Reset()
}

func (p *connPool) close() {
	p.pool.Close()
}
