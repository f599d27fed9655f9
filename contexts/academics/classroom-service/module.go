package classroom

import (
	"log/slog"

	httpadapter "classtrack/contexts/academics/classroom-service/adapters/http"
	"classtrack/contexts/academics/classroom-service/adapters/memory"
	"classtrack/contexts/academics/classroom-service/application/commands"
	"classtrack/contexts/academics/classroom-service/application/queries"
	"classtrack/contexts/academics/classroom-service/ports"
)

// Module is the classroom-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Usage   commands.MemberUsage
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Classes     ports.ClassRepository
	Enrollments ports.EnrollmentRepository
	Assignments ports.AssignmentRepository
	Submissions ports.SubmissionRepository
	References  ports.MemberReferenceRepository
	Members     ports.MemberDirectory
	Clock       ports.Clock
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		CreateClass: commands.CreateClassUseCase{
			Classes: deps.Classes,
			Members: deps.Members,
			Logger:  deps.Logger,
		},
		UpdateClass: commands.UpdateClassUseCase{
			Classes: deps.Classes,
			Members: deps.Members,
			Logger:  deps.Logger,
		},
		DeleteClass: commands.DeleteClassUseCase{
			Classes: deps.Classes,
			Logger:  deps.Logger,
		},
		EnrollStudent: commands.EnrollStudentUseCase{
			Classes:     deps.Classes,
			Enrollments: deps.Enrollments,
			Members:     deps.Members,
			Clock:       deps.Clock,
			Logger:      deps.Logger,
		},
		CreateAssignment: commands.CreateAssignmentUseCase{
			Classes:     deps.Classes,
			Assignments: deps.Assignments,
			Members:     deps.Members,
			Clock:       deps.Clock,
			Logger:      deps.Logger,
		},
		CreateSubmission: commands.CreateSubmissionUseCase{
			Assignments: deps.Assignments,
			Enrollments: deps.Enrollments,
			Submissions: deps.Submissions,
			Members:     deps.Members,
			Clock:       deps.Clock,
			Logger:      deps.Logger,
		},
		GradeSubmission: commands.GradeSubmissionUseCase{
			Classes:     deps.Classes,
			Assignments: deps.Assignments,
			Submissions: deps.Submissions,
			Clock:       deps.Clock,
			Logger:      deps.Logger,
		},
		GetClass: queries.GetClassUseCase{
			Classes: deps.Classes,
			Logger:  deps.Logger,
		},
		ListClasses: queries.ListClassesUseCase{
			Classes: deps.Classes,
			Logger:  deps.Logger,
		},
		CountClasses: queries.CountClassesUseCase{
			Classes: deps.Classes,
			Logger:  deps.Logger,
		},
		ListEnrollments: queries.ListEnrollmentsUseCase{
			Classes:     deps.Classes,
			Enrollments: deps.Enrollments,
			Logger:      deps.Logger,
		},
		ListAssignments: queries.ListAssignmentsUseCase{
			Classes:     deps.Classes,
			Enrollments: deps.Enrollments,
			Assignments: deps.Assignments,
			Logger:      deps.Logger,
		},
		GetAssignment: queries.GetAssignmentUseCase{
			Assignments: deps.Assignments,
			Logger:      deps.Logger,
		},
		ListSubmissions: queries.ListSubmissionsUseCase{
			Classes:     deps.Classes,
			Assignments: deps.Assignments,
			Submissions: deps.Submissions,
			Logger:      deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler: handler,
		Usage: commands.MemberUsage{
			References: deps.References,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
// members resolves user roles; it is usually the identity module's directory.
func NewInMemoryModule(members ports.MemberDirectory, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Classes:     store,
		Enrollments: store,
		Assignments: store,
		Submissions: store,
		References:  store,
		Members:     members,
		Clock:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
