package main

import (
	"fmt"
	"log"

	"bookly/internal/appointments"
	"bookly/internal/questions"
	"bookly/internal/resources"
	"bookly/internal/schedules"
	"bookly/internal/shared/config"
	"bookly/internal/shared/database"
	"bookly/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Bookly Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"question_responses",
		"bookings",
		"slot_reservations",
		"custom_questions",
		"schedules",
		"appointment_types",
		"resources",
		"users",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll seeds organisers, customers, a bookable service with weekly
// schedules, intake questions, and capacity resources
func (s *Seeder) SeedAll() error {
	organiser, err := s.seedUser("Olive Organiser", "organiser@bookly.dev", users.RoleOrganiser)
	if err != nil {
		return err
	}
	if _, err := s.seedUser("Casey Customer", "customer@bookly.dev", users.RoleCustomer); err != nil {
		return err
	}
	fmt.Println("  👤 Users created")

	consultation, err := s.seedAppointmentType(organiser.ID, "Initial Consultation", 30, 25.00)
	if err != nil {
		return err
	}
	workshop, err := s.seedAppointmentType(organiser.ID, "Group Workshop", 60, 40.00)
	if err != nil {
		return err
	}
	fmt.Println("  📅 Appointment types created")

	// Weekday mornings for the consultation, Wednesday afternoon for the workshop
	for day := 1; day <= 5; day++ {
		if err := s.seedSchedule(consultation.ID, day, "09:00:00", "12:00:00"); err != nil {
			return err
		}
	}
	if err := s.seedSchedule(workshop.ID, 3, "13:00:00", "17:00:00"); err != nil {
		return err
	}
	fmt.Println("  🕘 Schedules created")

	if err := s.seedQuestion(consultation.ID, "What would you like to discuss?", questions.FieldTypeTextarea, true, 1); err != nil {
		return err
	}
	if err := s.seedQuestion(consultation.ID, "How did you hear about us?", questions.FieldTypeText, false, 2); err != nil {
		return err
	}
	fmt.Println("  ❓ Intake questions created")

	if err := s.seedResource(organiser.ID, "Workshop Room A", 8); err != nil {
		return err
	}
	if err := s.seedResource(organiser.ID, "Workshop Room B", 4); err != nil {
		return err
	}
	fmt.Println("  🏢 Resources created")

	return nil
}

func (s *Seeder) seedUser(name, email string, role users.Role) (*users.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &users.User{
		FullName: name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.db.PostgreSQL.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return user, nil
}

func (s *Seeder) seedAppointmentType(organiserID uuid.UUID, title string, durationMinutes int, fee float64) (*appointments.AppointmentType, error) {
	appointmentType := &appointments.AppointmentType{
		OrganiserID:     organiserID,
		Title:           title,
		DurationMinutes: durationMinutes,
		BookingFee:      fee,
		IsPublished:     true,
	}
	if err := s.db.PostgreSQL.Create(appointmentType).Error; err != nil {
		return nil, fmt.Errorf("failed to seed appointment type %s: %w", title, err)
	}
	return appointmentType, nil
}

func (s *Seeder) seedSchedule(appointmentTypeID uuid.UUID, dayOfWeek int, start, end string) error {
	schedule := &schedules.Schedule{
		AppointmentTypeID: appointmentTypeID,
		DayOfWeek:         dayOfWeek,
		StartTime:         start,
		EndTime:           end,
	}
	if err := s.db.PostgreSQL.Create(schedule).Error; err != nil {
		return fmt.Errorf("failed to seed schedule: %w", err)
	}
	return nil
}

func (s *Seeder) seedQuestion(appointmentTypeID uuid.UUID, label string, fieldType questions.FieldType, mandatory bool, sortOrder int) error {
	question := &questions.CustomQuestion{
		AppointmentTypeID: appointmentTypeID,
		Label:             label,
		FieldType:         fieldType,
		IsMandatory:       mandatory,
		SortOrder:         sortOrder,
	}
	if err := s.db.PostgreSQL.Create(question).Error; err != nil {
		return fmt.Errorf("failed to seed question: %w", err)
	}
	return nil
}

func (s *Seeder) seedResource(organiserID uuid.UUID, name string, capacity int) error {
	resource := &resources.Resource{
		OrganiserID: organiserID,
		Name:        name,
		Capacity:    capacity,
		IsActive:    true,
	}
	if err := s.db.PostgreSQL.Create(resource).Error; err != nil {
		return fmt.Errorf("failed to seed resource %s: %w", name, err)
	}
	return nil
}
