package storage

// All persisted keys share one product prefix so session, settings, and
// audit data can never collide inside the shared store.
const keyPrefix = "vistaran-helpdesk-"

const (
	KeyCurrentUserID        = keyPrefix + "userId"
	KeyImpersonatedUserID   = keyPrefix + "impersonatedUserId"
	KeyAuditLog             = keyPrefix + "auditlog"
	KeyLogoURL              = keyPrefix + "logoUrl"
	KeyNotificationSettings = keyPrefix + "notificationSettings"
	KeyEmailJSServiceID     = keyPrefix + "emailjsServiceId"
	KeyEmailJSPublicKey     = keyPrefix + "emailjsPublicKey"
	KeyEmailTemplates       = keyPrefix + "emailTemplates"
	KeyTheme                = keyPrefix + "theme"
	KeyColorTheme           = keyPrefix + "color-theme"
)
