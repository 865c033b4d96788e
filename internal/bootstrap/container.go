package bootstrap

import (
	"log"

	"finance-manager-be/internal/config"
	"finance-manager-be/internal/controller"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/pkg/mailer"
	"finance-manager-be/internal/repository/unitofwork"
	"finance-manager-be/internal/service"
	"finance-manager-be/pkg/billing"
	"finance-manager-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PlanController         controller.PlanController
	SubscriptionController controller.SubscriptionController
	CheckoutController     controller.CheckoutController
	PayableController      controller.PayableController
	ReceivableController   controller.ReceivableController
	ContactController      controller.ContactController
	BankAccountController  controller.BankAccountController
	CategoryController     controller.CategoryController
	AdminController        controller.AdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisher := events.NewWatermillPublisher(pubSub, events.TopicSubscriptionEvents, sysLogger)

	// 3. Payment Gateway
	stripeClient, err := billing.NewStripeClient(
		cfg.Stripe.SecretKey,
		cfg.Stripe.WebhookSecret,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
		sysLogger,
	)
	if err != nil {
		log.Printf("[WARN] Stripe client not configured: %v", err)
	}

	// 4. Services
	configService := service.NewConfigService(uowFactory, publisher, sysLogger)
	planService := service.NewPlanService(uowFactory, configService, sysLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, planService, configService, publisher, sysLogger)
	entitlementService := service.NewEntitlementService(uowFactory, planService, subscriptionService, sysLogger)

	var gateway billing.CheckoutGateway
	if stripeClient != nil {
		gateway = stripeClient
	}
	checkoutService := service.NewCheckoutService(
		uowFactory,
		gateway,
		planService,
		subscriptionService,
		configService,
		publisher,
		sysLogger,
	)

	payableService := service.NewPayableService(uowFactory, entitlementService, sysLogger)
	receivableService := service.NewReceivableService(uowFactory, sysLogger)
	contactService := service.NewContactService(uowFactory, entitlementService, sysLogger)
	bankAccountService := service.NewBankAccountService(uowFactory, sysLogger)
	categoryService := service.NewCategoryService(uowFactory, entitlementService, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		events.TopicSubscriptionEvents,
		emailService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		PlanController:         controller.NewPlanController(planService),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService, entitlementService),
		CheckoutController:     controller.NewCheckoutController(checkoutService),
		PayableController:      controller.NewPayableController(payableService),
		ReceivableController:   controller.NewReceivableController(receivableService),
		ContactController:      controller.NewContactController(contactService),
		BankAccountController:  controller.NewBankAccountController(bankAccountService),
		CategoryController:     controller.NewCategoryController(categoryService),
		AdminController:        controller.NewAdminController(configService, planService),

		ConsumerService: consumerService,
	}
}
