package services

import (
	"log"
	"time"

	"baf-backend/database"
	"baf-backend/models"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProgramCron periodically closes training programs whose deadline has passed
type ProgramCron struct {
	programRepo  *database.ProgramRepository
	fcmTokenRepo *database.FCMTokenRepository
	fcmService   *FCMService
	cron         *cron.Cron
}

// NewProgramCron creates a new ProgramCron
func NewProgramCron(db *mongo.Database, fcmService *FCMService) *ProgramCron {
	return &ProgramCron{
		programRepo:  database.NewProgramRepository(db),
		fcmTokenRepo: database.NewFCMTokenRepository(db),
		fcmService:   fcmService,
		cron:         cron.New(),
	}
}

// Start starts the sweep, checking every 10 minutes
func (pc *ProgramCron) Start() {
	pc.cron.AddFunc("@every 10m", pc.sweepExpiredPrograms)
	pc.cron.Start()
	log.Println("✓ Program expiry cron started (10 minute sweep)")
}

// Stop stops the cron scheduler
func (pc *ProgramCron) Stop() {
	pc.cron.Stop()
}

// sweepExpiredPrograms deactivates programs past their registration deadline.
// Eligibility checks already reject late submissions, the sweep just keeps
// the public listing tidy. The cutoff is the start of the current IST day:
// deadlines are inclusive through their whole day, so a program only expires
// once its deadline day is over in Indian time.
func (pc *ProgramCron) sweepExpiredPrograms() {
	programs, err := pc.programRepo.FindExpiredActive(models.StartOfDayIST(time.Now()))
	if err != nil {
		log.Printf("Failed to look up expired programs: %v", err)
		return
	}

	if len(programs) == 0 {
		return
	}

	log.Printf("🔔 %d program(s) past deadline, deactivating", len(programs))

	for _, program := range programs {
		if err := pc.programRepo.Update(program.ID, bson.M{"is_active": false}); err != nil {
			log.Printf("Failed to deactivate program %s: %v", program.ID.Hex(), err)
			continue
		}

		pc.notifyAdmins(program.Title)
	}
}

// notifyAdmins tells registered admin devices that a program has closed
func (pc *ProgramCron) notifyAdmins(programTitle string) {
	if pc.fcmService == nil || !pc.fcmService.Enabled() {
		return
	}

	allTokens, err := pc.fcmTokenRepo.FindAll()
	if err != nil {
		log.Printf("Failed to load FCM tokens: %v", err)
		return
	}

	if len(allTokens) == 0 {
		return
	}

	var tokens []string
	for _, t := range allTokens {
		tokens = append(tokens, t.Token)
	}

	title := "Registrations closed"
	message := "Registration deadline passed for '" + programTitle + "'"
	data := map[string]string{
		"action": "program_closed",
		"url":    "/admin/programs",
	}

	success, failed, _ := pc.fcmService.SendToAll(tokens, title, message, data)
	log.Printf("📧 Closure notice for '%s' sent: %d ok, %d failed", programTitle, success, failed)
}
