package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/campusly/college-management/internal/config"
	"github.com/campusly/college-management/internal/database"
	"github.com/campusly/college-management/internal/logger"
	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository"
	"github.com/campusly/college-management/internal/service"
)

type departmentSeed struct {
	id, name, shortCode string
	branch              model.Branch
	online              bool
}

var departments = []departmentSeed{
	{"D-CSE", "Computer Science and Engineering", "CSE", model.BranchCSE, true},
	{"D-ECE", "Electronics and Communication", "ECE", model.BranchECE, false},
	{"D-EEE", "Electrical and Electronics", "EEE", model.BranchEEE, false},
	{"D-MECH", "Mechanical Engineering", "MECH", model.BranchMECH, false},
	{"D-CIVIL", "Civil Engineering", "CIVIL", model.BranchCIVIL, false},
	{"D-IT", "Information Technology", "IT", model.BranchIT, true},
}

var names = []string{
	"Aarav Shah", "Diya Nair", "Kabir Rao", "Meera Iyer", "Rohan Das",
	"Sana Khan", "Vikram Pillai", "Anika Bose", "Ishaan Gupta", "Tara Menon",
}

func main() {
	perDepartment := flag.Int("students", 10, "Students to create per department")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	departmentRepo := repository.NewDepartmentRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)

	relations := service.NewDepartmentRelations(departmentRepo, studentRepo, teacherRepo,
		service.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait, log), log)
	audit := service.NewAuditService(rdb, log)

	departmentService := service.NewDepartmentService(departmentRepo, relations, audit, log)
	studentService := service.NewStudentService(studentRepo, relations, audit, log)
	teacherService := service.NewTeacherService(teacherRepo, relations, audit, log)

	actor := model.SystemPrincipal
	fmt.Printf("=== Seeding %d departments ===\n", len(departments))

	created := 0
	for _, d := range departments {
		_, err := departmentService.Save(ctx, actor, &model.Department{
			DepartmentID:    d.id,
			DepartmentName:  d.name,
			ShortCode:       d.shortCode,
			AvailableOnline: d.online,
		})
		switch {
		case errors.Is(err, service.ErrDepartmentExists):
			fmt.Printf("Department %s already exists, reusing it\n", d.id)
		case err != nil:
			log.Fatal().Err(err).Str("department_id", d.id).Msg("Failed to create department")
		}

		teacherID := "T-" + d.shortCode
		if _, err := teacherService.Save(ctx, actor, &model.Teacher{
			TeacherID:    teacherID,
			Name:         "Head of " + d.shortCode,
			Age:          45,
			DepartmentID: d.id,
		}); err != nil && !errors.Is(err, service.ErrTeacherExists) {
			fmt.Printf("Error creating teacher %s: %v\n", teacherID, err)
		}

		for i := 0; i < *perDepartment; i++ {
			student := &model.Student{
				StudentID:    fmt.Sprintf("%s-%03d", d.shortCode, i+1),
				RollNumber:   fmt.Sprintf("%s%04d", d.shortCode, i+1),
				Name:         names[i%len(names)],
				Age:          18 + i%5,
				Branch:       d.branch,
				DepartmentID: d.id,
			}
			if _, err := studentService.Save(ctx, actor, student); err != nil {
				if !errors.Is(err, service.ErrStudentExists) {
					fmt.Printf("Error creating student %s: %v\n", student.StudentID, err)
				}
				continue
			}
			created++
		}
		fmt.Printf("Seeded department %s\n", d.id)
	}

	fmt.Printf("\nSeed completed! Added %d students.\n", created)
}
