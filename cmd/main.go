package main

import (
	"context"
	"log"

	"titanfit/config"
	"titanfit/controllers"
	"titanfit/routes"
	"titanfit/services"
	"titanfit/utils"
)

func main() {
	db := config.InitDB()
	ctx := context.Background()

	advisor := services.NewGeminiService()

	// AWS integrations are optional; the core workflow runs without them
	rek, err := services.NewRekognitionService(ctx)
	if err != nil {
		log.Printf("Rekognition unavailable, classifying without label hints: %v", err)
		rek = nil
	}
	uploader, err := utils.NewS3Uploader(ctx)
	if err != nil {
		log.Printf("S3 unavailable, image refs disabled: %v", err)
		uploader = nil
	}
	mailer, err := utils.NewMailer(ctx)
	if err != nil {
		log.Printf("SES unavailable, welcome emails disabled: %v", err)
		mailer = nil
	}

	ledger := services.NewLedgerService(db)
	tracker := services.NewTrackerService(db, ledger)
	staging := services.NewStagingStore()
	food := services.NewFoodService(advisor, rek, wrapUploader(uploader), staging, ledger, tracker)
	chat := services.NewChatService(db, advisor, ledger)
	users := services.NewUserService(db)
	auth := services.NewAuthService(db)

	h := &routes.Handlers{
		Auth:    controllers.NewAuthController(auth, mailer),
		User:    controllers.NewUserController(users, advisor, wrapUploader(uploader)),
		Food:    controllers.NewFoodController(food, ledger),
		Tracker: controllers.NewTrackerController(tracker, ledger),
		Log:     controllers.NewLogController(ledger, users),
		Chat:    controllers.NewChatController(chat, users),
	}

	r := routes.SetupRouter(db, h)
	r.Run(":8080")
}

// wrapUploader keeps a typed-nil *S3Uploader from sneaking into the
// ImageUploader interface as a non-nil value.
func wrapUploader(u *utils.S3Uploader) services.ImageUploader {
	if u == nil {
		return nil
	}
	return u
}
