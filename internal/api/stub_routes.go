package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudmzansi/server/internal/api/handlers"
)

// stubRoute maps one reserved endpoint to its named portal operation.
type stubRoute struct {
	method string
	path   string
	op     string
}

// stubRoutes lists the endpoint groups reserved for the portal build-out.
// Every route answers 501 through the stub handler until its backing
// operation is implemented.
var stubRoutes = []stubRoute{
	// Invoice extras
	{http.MethodGet, "/invoice/templates", "invoice.templates"},
	{http.MethodPost, "/invoice/track", "invoice.track"},
	{http.MethodPost, "/invoice/status", "invoice.manage_status"},
	{http.MethodPost, "/invoice/reminder", "invoice.reminder"},
	{http.MethodGet, "/invoice/history/:userId", "invoice.history"},
	{http.MethodGet, "/invoice/portal/:userId", "invoice.portal"},

	// Payment tracking
	{http.MethodPost, "/payment/track", "payment.track"},
	{http.MethodPost, "/payment/notify", "payment.notify"},
	{http.MethodPost, "/payment/retry", "payment.retry"},
	{http.MethodPost, "/refund", "payment.refund"},

	// Contract lifecycle
	{http.MethodPost, "/contract", "contract.create"},
	{http.MethodPost, "/contract/sign", "contract.sign"},
	{http.MethodPost, "/contract/version", "contract.version"},
	{http.MethodPost, "/contract/approve", "contract.approve"},
	{http.MethodPost, "/contract/status", "contract.status"},
	{http.MethodPost, "/contract/reminder", "contract.reminder"},
	{http.MethodPost, "/contract/store", "contract.store"},
	{http.MethodGet, "/contract/templates", "contract.templates"},
	{http.MethodGet, "/contract/:contractId", "contract.get"},
	{http.MethodGet, "/contract/:contractId/analytics", "contract.analytics"},
	{http.MethodGet, "/contract/:contractId/compliance", "contract.compliance"},
	{http.MethodPost, "/contract/esignature", "contract.esignature"},
	{http.MethodPost, "/contract/generate", "contract.generate"},
	{http.MethodPost, "/contract/notify", "contract.notify"},
	{http.MethodPost, "/contract/amend", "contract.amend"},
	{http.MethodPost, "/contract/expire", "contract.expire"},

	// Onboarding wizard
	{http.MethodPost, "/onboarding/start", "onboarding.start"},
	{http.MethodPost, "/onboarding/step", "onboarding.step"},
	{http.MethodPost, "/onboarding/company", "onboarding.company"},
	{http.MethodPost, "/onboarding/requirements", "onboarding.requirements"},
	{http.MethodPost, "/onboarding/budget-timeline", "onboarding.budget_timeline"},
	{http.MethodPost, "/onboarding/plan", "onboarding.plan"},
	{http.MethodPost, "/onboarding/progress", "onboarding.progress"},
	{http.MethodPost, "/onboarding/complete", "onboarding.complete"},
	{http.MethodPost, "/onboarding/multistep", "onboarding.multistep"},
	{http.MethodGet, "/onboarding/progress/:userId", "onboarding.get_progress"},
	{http.MethodPost, "/onboarding/validate", "onboarding.validate"},
	{http.MethodPost, "/onboarding/completion", "onboarding.completion"},
	{http.MethodPost, "/onboarding/welcome", "onboarding.welcome"},
	{http.MethodGet, "/onboarding/checklist/:userId", "onboarding.checklist"},
	{http.MethodPost, "/onboarding/portal", "onboarding.portal"},

	// Project portal
	{http.MethodGet, "/project/:projectId/dashboard", "project.dashboard"},
	{http.MethodPost, "/project/:projectId/milestone", "project.milestone"},
	{http.MethodGet, "/project/:projectId/progress", "project.progress"},
	{http.MethodPost, "/project/:projectId/task", "project.task"},
	{http.MethodPost, "/project/:projectId/upload", "project.upload"},
	{http.MethodPost, "/project/:projectId/message", "project.message"},
	{http.MethodGet, "/project/:projectId/timeline", "project.timeline"},
	{http.MethodPost, "/project/:projectId/status", "project.status"},
	{http.MethodPost, "/project/:projectId/complete", "project.complete"},
	{http.MethodPost, "/project/:projectId/progress/realtime", "project.progress_realtime"},
	{http.MethodPost, "/project/:projectId/milestone/complete", "project.milestone_complete"},
	{http.MethodPost, "/project/:projectId/files", "project.files"},
	{http.MethodPost, "/project/:projectId/feedback", "project.feedback"},
	{http.MethodGet, "/project/:projectId/timeline/visualize", "project.timeline_visualize"},
	{http.MethodPost, "/project/:projectId/status/notify", "project.status_notify"},
	{http.MethodPost, "/project/:projectId/completion", "project.completion"},
}

// analyticsRoutes lists the analytics and reporting endpoints. They go
// through the analytics handler so each view is audited before the 501.
var analyticsRoutes = []stubRoute{
	{http.MethodGet, "/analytics/dashboard", "dashboard"},
	{http.MethodGet, "/analytics/revenue", "revenue"},
	{http.MethodGet, "/analytics/client", "client"},
	{http.MethodGet, "/analytics/project", "project"},
	{http.MethodGet, "/analytics/conversion", "conversion"},
	{http.MethodGet, "/analytics/performance", "performance"},
	{http.MethodPost, "/analytics/custom-report", "custom-report"},
	{http.MethodGet, "/reports/financial", "financial"},
	{http.MethodGet, "/reports/project-status", "project-status"},
	{http.MethodGet, "/reports/client-activity", "client-activity"},
	{http.MethodGet, "/reports/revenue", "revenue-report"},
	{http.MethodGet, "/reports/conversion-funnel", "conversion-funnel"},
	{http.MethodGet, "/reports/performance", "performance-report"},
	{http.MethodPost, "/reports/custom", "custom-report"},
}

// registerStubRoutes mounts every reserved endpoint on the group.
func registerStubRoutes(g *gin.RouterGroup, h *handlers.StubHandler) {
	for _, s := range stubRoutes {
		g.Handle(s.method, s.path, h.Operation(s.op))
	}
}

// registerAnalyticsRoutes mounts the analytics and reporting endpoints.
func registerAnalyticsRoutes(g *gin.RouterGroup, h *handlers.AnalyticsHandler) {
	for _, s := range analyticsRoutes {
		g.Handle(s.method, s.path, h.Report(s.op))
	}
}
