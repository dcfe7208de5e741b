// Package student contains the console command workflows for student
// records.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// The command mux expects handlers with the signature:
//
//	func(*console.Console) error
//
// That signature has no room for the store. Each exported function here is
// a factory that accepts the store and returns the handler, which closes
// over it:
//
//	mux.HandleFunc("add", student.Add(store))
//
// Add(store) runs ONCE at startup; the returned handler runs every time the
// user types "add".
package student

import (
	"errors"
	"log/slog"

	"github.com/aanand-mishra/student-records/internal/console"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/aanand-mishra/student-records/internal/validate"
)

// Register wires every student command plus exit into mux.
func Register(mux *console.Mux, store storage.Storage) {
	mux.HandleFunc("add", Add(store))
	mux.HandleFunc("display", Display(store))
	mux.HandleFunc("search", Search(store))
	mux.HandleFunc("delete", Delete(store))
	mux.HandleFunc("list", List(store))
	mux.HandleFunc("exit", console.Exit)
}

// ─────────────────────────────────────────────────────────────────────────────
// Add handles "add".
// Prompts for each field in turn, re-prompting a field until it validates,
// then stores the record.
//
//	id: 1
//	name: Ann
//	age: 20
//	program: CS
//	gpa: 3.987
//	group: d
//	ok: student 1 added to Downtown
//
// A full store is reported before any field is asked for.
// ─────────────────────────────────────────────────────────────────────────────
func Add(store storage.Storage) console.HandlerFunc {
	return func(c *console.Console) error {
		slog.Info("adding a student")

		count, err := store.Count()
		if err != nil {
			return err
		}
		if count >= store.Capacity() {
			response.Write(c.Out(), response.GeneralError(storage.ErrCapacityExceeded))
			return nil
		}

		var (
			student types.Student
			taken   = func(id int) bool {
				_, err := store.FindByID(id)
				return !errors.Is(err, storage.ErrNotFound)
			}
		)

		// Each Ask blocks until its field is valid; an error here means
		// input ended, and nothing has been stored yet.
		if student.ID, err = console.Ask(c, "id", func(raw string) (int, error) {
			return validate.ID(raw, taken)
		}); err != nil {
			return err
		}
		if student.Name, err = console.Ask(c, "name", validate.Name); err != nil {
			return err
		}
		if student.Age, err = console.Ask(c, "age", validate.Age); err != nil {
			return err
		}
		if student.Program, err = console.Ask(c, "program", validate.Program); err != nil {
			return err
		}
		if student.GPA, err = console.Ask(c, "gpa", validate.GPA); err != nil {
			return err
		}
		if student.Group, err = console.Ask(c, "group", validate.Group); err != nil {
			return err
		}

		if err := store.Add(student); err != nil {
			slog.Error("error adding student",
				slog.Int("id", student.ID),
				slog.String("error", err.Error()))
			response.Write(c.Out(), response.GeneralError(err))
			return nil
		}

		slog.Info("student added", slog.Int("id", student.ID))
		response.Write(c.Out(), response.OK("student %d added to %s", student.ID, student.Group))
		return nil
	}
}

// Display handles "display": every student, Downtown first, then Burnaby.
func Display(store storage.Storage) console.HandlerFunc {
	return func(c *console.Console) error {
		slog.Info("displaying all students")

		students, err := storage.ListAll(store)
		if err != nil {
			return err
		}
		return response.WriteStudents(c.Out(), "All students", students)
	}
}

// Search handles "search": finds a student by id and reports their group.
func Search(store storage.Storage) console.HandlerFunc {
	return func(c *console.Console) error {
		id, err := console.Ask(c, "id", validate.LookupID)
		if err != nil {
			return err
		}
		slog.Info("searching for a student", slog.Int("id", id))

		student, err := store.GetByID(id)
		if errors.Is(err, storage.ErrNotFound) {
			response.Write(c.Out(), response.GeneralError(err))
			return nil
		}
		if err != nil {
			return err
		}

		response.Write(c.Out(), response.OK("student %d is in group %s", student.ID, student.Group))
		return response.WriteStudents(c.Out(), student.Group.String(), []types.Student{student})
	}
}

// Delete handles "delete". An unknown id is reported and nothing changes.
func Delete(store storage.Storage) console.HandlerFunc {
	return func(c *console.Console) error {
		id, err := console.Ask(c, "id", validate.LookupID)
		if err != nil {
			return err
		}
		slog.Info("deleting a student", slog.Int("id", id))

		err = store.DeleteByID(id)
		if errors.Is(err, storage.ErrNotFound) {
			response.Write(c.Out(), response.GeneralError(err))
			return nil
		}
		if err != nil {
			return err
		}

		slog.Info("student deleted", slog.Int("id", id))
		response.Write(c.Out(), response.OK("student %d deleted", id))
		return nil
	}
}

// List handles "list": asks for a group and shows only its students.
func List(store storage.Storage) console.HandlerFunc {
	return func(c *console.Console) error {
		group, err := console.Ask(c, "group", validate.Group)
		if err != nil {
			return err
		}
		slog.Info("listing students", slog.String("group", group.String()))

		students, err := store.ListByGroup(group)
		if err != nil {
			return err
		}
		return response.WriteStudents(c.Out(), group.String(), students)
	}
}
