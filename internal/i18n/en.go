package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	// Views
	"view.todos":     "Todos",
	"view.dashboard": "Dashboard",
	"view.analytics": "Analytics",
	"view.login":     "Sign In",
	"view.register":  "Sign Up",

	// Todo fields
	"todo.title":       "Title",
	"todo.description": "Description",
	"todo.category":    "Category",
	"todo.priority":    "Priority",
	"todo.due":         "Due",
	"todo.time_spent":  "Time spent",
	"todo.completed":   "Done",
	"todo.pending":     "Pending",
	"todo.overdue":     "overdue",

	// Categories
	"category.work":     "Work",
	"category.personal": "Personal",
	"category.shopping": "Shopping",
	"category.health":   "Health",
	"category.other":    "Other",

	// Priorities
	"priority.high":   "High",
	"priority.medium": "Medium",
	"priority.low":    "Low",

	// List view
	"list.empty":     "No todos match the current filters",
	"list.loading":   "Loading...",
	"list.page":      "Page %d of %d (%d total)",
	"list.searching": "Search: %s",

	// Filters
	"filter.all":       "All",
	"filter.active":    "Active",
	"filter.completed": "Completed",
	"filter.clear":     "Clear filters",

	// Form
	"form.new_todo":       "New Todo",
	"form.edit_todo":      "Edit Todo",
	"form.submit":         "Save",
	"form.cancel":         "Cancel",
	"form.title_required": "Title is required",
	"form.title_too_long": "Title must be at most %d characters",
	"form.bad_category":   "Unknown category",
	"form.bad_priority":   "Unknown priority",
	"form.bad_date":       "Date must be YYYY-MM-DD",

	// Delete confirmation
	"confirm.delete":    "Delete \"%s\"? This cannot be undone.",
	"confirm.yes":       "Delete",
	"confirm.no":        "Keep",
	"confirm.cancelled": "Deletion cancelled",

	// Timer
	"timer.running": "timing %s",
	"timer.started": "Timer started",
	"timer.stopped": "Timer stopped: %s recorded",
	"timer.busy":    "A timer is already running for this todo",

	// Dashboard
	"dashboard.welcome":     "Welcome back, %s",
	"dashboard.total":       "Total",
	"dashboard.completed":   "Completed",
	"dashboard.pending":     "Pending",
	"dashboard.rate":        "Completion",
	"dashboard.recent":      "Recent todos",
	"dashboard.recent_none": "Nothing recent",

	// Analytics
	"analytics.by_category": "By category",
	"analytics.by_priority": "By priority",
	"analytics.trend":       "Completion trend",
	"analytics.month":       "This month: %d created, %d completed",
	"analytics.time":        "Total time: %s",
	"analytics.empty":       "No analytics yet",

	// Auth
	"auth.email":          "Email",
	"auth.password":       "Password",
	"auth.name":           "Name",
	"auth.login":          "Sign in",
	"auth.register":       "Create account",
	"auth.switch_login":   "Have an account? Sign in",
	"auth.switch_signup":  "New here? Sign up",
	"auth.logged_out":     "Signed out",
	"auth.session_ended":  "Session expired, please sign in again",
	"auth.email_required": "Email is required",
	"auth.name_required":  "Name is required",
	"auth.bad_email":      "Not a valid email address",
	"auth.password_short": "Password must be at least %d characters",

	// Errors
	"error.network":    "Network error: %s",
	"error.validation": "Invalid input: %s",
	"error.not_found":  "Not found: %s",
	"error.server":     "Server error: %s",

	// Status bar
	"status.ready":   "Ready",
	"status.working": "Working...",
	"status.offline": "Offline? Request failed",

	// Keybindings
	"keys.help":   "? help",
	"keys.quit":   "q quit",
	"keys.new":    "n new",
	"keys.toggle": "space toggle",
	"keys.delete": "d delete",
	"keys.edit":   "e edit",
	"keys.timer":  "t timer",
	"keys.views":  "tab views",
	"keys.search": "/ search",
	"keys.pages":  "←/→ pages",
}
