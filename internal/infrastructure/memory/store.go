// Package memory implementa los puertos de persistencia en memoria. Se usa en
// los tests y con STORAGE=memory; respeta las mismas restricciones de unicidad
// que el esquema PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/attendly-api/internal/domain/entity"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
)

type state struct {
	users      map[string]entity.User
	employees  map[string]entity.Employee
	attendance map[string]entity.AttendanceRecord
	dayIndex   map[string]string // employeeID|fecha -> id de registro
	leaves     map[string]entity.LeaveRequest
}

func newState() *state {
	return &state{
		users:      make(map[string]entity.User),
		employees:  make(map[string]entity.Employee),
		attendance: make(map[string]entity.AttendanceRecord),
		dayIndex:   make(map[string]string),
		leaves:     make(map[string]entity.LeaveRequest),
	}
}

// clone copia los mapas; las entidades se guardan por valor, los punteros
// internos (fechas opcionales) nunca se mutan en sitio.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.attendance {
		c.attendance[k] = v
	}
	for k, v := range s.dayIndex {
		c.dayIndex[k] = v
	}
	for k, v := range s.leaves {
		c.leaves[k] = v
	}
	return c
}

// Store datos compartidos por los repos en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// conn da acceso al estado: fuera de transacción toma el lock por llamada,
// dentro de Run el lock ya lo tiene el runner.
type conn struct {
	store *Store
	inTx  bool
}

func (c conn) do(ctx context.Context, fn func(s *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.inTx {
		c.store.mu.Lock()
		defer c.store.mu.Unlock()
	}
	return fn(c.store.st)
}

// Users repo de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{c: conn{store: s}} }

// Employees repo de empleados fuera de transacción.
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{c: conn{store: s}} }

// Attendance repo de asistencia fuera de transacción.
func (s *Store) Attendance() *AttendanceRepo { return &AttendanceRepo{c: conn{store: s}} }

// Leaves repo de solicitudes de ausencia.
func (s *Store) Leaves() *LeaveRepo { return &LeaveRepo{c: conn{store: s}} }

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y restaura la foto previa si fn falla.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.AttendanceTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.st.clone()
	c := conn{store: r.store, inTx: true}
	err := fn(repository.AttendanceTx{
		Users:      &UserRepo{c: c},
		Employees:  &EmployeeRepo{c: c},
		Attendance: &AttendanceRepo{c: c},
	})
	if err != nil {
		r.store.st = snapshot
		return err
	}
	return nil
}
