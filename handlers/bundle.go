package handlers

// HandlerBundle aggregates all HTTP handlers for route registration.
type HandlerBundle struct {
	Auth           *AuthHandler
	Calls          *CallHandler
	Technicians    *TechnicianHandler
	Payments       *PaymentHandler
	Forms          *ServiceFormHandler
	Reconciliation *ReconciliationHandler
	Storage        *StorageHandler
}
