package bootstrap

import (
	"personal-notes-be/internal/config"
	"personal-notes-be/internal/controller"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/mailer"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/pkg/session"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	OAuthController controller.IOAuthController
	NoteController  controller.INoteController

	// Background services (exposed for main.go to run)
	MailConsumerService service.IMailConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	isProd := cfg.App.Environment == "production"

	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, isProd)

	// The outbound email channel is pluggable: a real SMTP sender when
	// configured, otherwise the log-only development stub.
	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	} else {
		emailService = mailer.NewLogEmailService(sysLogger)
	}

	// 2. Event bus (in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	mailPublisher := service.NewPublisherService(cfg.App.OTPMailTopic, pubSub)
	mailConsumer := service.NewMailConsumerService(pubSub, cfg.App.OTPMailTopic, emailService, sysLogger)

	// 3. Sessions & middleware
	sessions := session.NewManager(cfg.Auth.JWTSecret, session.TokenTTL, isProd)
	authMiddleware := serverutils.NewAuthMiddleware(sessions, uowFactory)

	// 4. Services
	authService := service.NewAuthService(uowFactory, sessions, mailPublisher, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, sessions, cfg.Auth, sysLogger)
	noteService := service.NewNoteService(uowFactory)

	// 5. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService, sessions, authMiddleware),
		OAuthController: controller.NewOAuthController(oauthService, sessions, cfg.App.ClientURL),
		NoteController:  controller.NewNoteController(noteService, authMiddleware),

		MailConsumerService: mailConsumer,

		Logger: sysLogger,
	}
}
