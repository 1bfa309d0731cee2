package models

// Seed data loaded when no persisted snapshot exists. Each call returns
// fresh slices so callers may mutate them freely.

func SeedUsers() []User {
	return []User{
		{ID: "u-1", Name: "Alex Morgan", Email: "alex.morgan@teamboard.dev", Password: "admin123", Role: RoleAdmin},
		{ID: "u-2", Name: "Priya Patel", Email: "priya.patel@teamboard.dev", Password: "manager123", Role: RoleProjectManager},
		{ID: "u-3", Name: "Diego Ramos", Email: "diego.ramos@teamboard.dev", Password: "developer123", Role: RoleDeveloper},
		{ID: "u-4", Name: "Mei Chen", Email: "mei.chen@teamboard.dev", Password: "developer123", Role: RoleDeveloper},
		{ID: "u-5", Name: "Sam Taylor", Email: "sam.taylor@teamboard.dev", Password: "viewer123", Role: RoleViewer},
		{ID: "u-6", Name: "Jordan Lee", Email: "jordan.lee@teamboard.dev", Password: "manager123", Role: RoleProjectManager},
	}
}

func SeedProjects() []Project {
	return []Project{
		{
			ID:               "p-1",
			Name:             "Apollo Customer Portal",
			Description:      "Self-service portal for enterprise customers.",
			Status:           ProjectInProgress,
			DueDate:          "2026-11-28",
			ProjectManagerID: "u-2",
			MemberIDs:        []string{"u-2", "u-3", "u-5"},
			Tag:              "Web",
		},
		{
			ID:               "p-2",
			Name:             "Atlas Mobile",
			Description:      "Native companion app for field teams.",
			Status:           ProjectPlanning,
			DueDate:          "2027-01-15",
			ProjectManagerID: "u-6",
			MemberIDs:        []string{"u-6", "u-4"},
			Tag:              "Mobile",
		},
		{
			ID:               "p-3",
			Name:             "Beacon Analytics",
			Description:      "Usage analytics pipeline and dashboards.",
			Status:           ProjectCompleted,
			DueDate:          "2026-09-30",
			ProjectManagerID: "u-2",
			MemberIDs:        []string{"u-2", "u-3", "u-4"},
			Tag:              "Data",
		},
	}
}

func SeedTasks() []Task {
	return []Task{
		{ID: "t-1", Title: "Design login flow", Description: "Wireframes for SSO and password login.", ProjectID: "p-1", AssigneeID: "u-3", Status: TaskInProgress, Priority: PriorityHigh, DueDate: "2026-10-24"},
		{ID: "t-2", Title: "Billing page API", Description: "Expose invoices and payment methods.", ProjectID: "p-1", AssigneeID: "u-3", Status: TaskTodo, Priority: PriorityMedium, DueDate: "2026-11-10"},
		{ID: "t-3", Title: "Accessibility audit", Description: "Run the portal through an a11y checklist.", ProjectID: "p-1", AssigneeID: "u-5", Status: TaskReview, Priority: PriorityLow, DueDate: "2026-11-20"},
		{ID: "t-4", Title: "Offline sync spike", Description: "Evaluate local-first storage options.", ProjectID: "p-2", AssigneeID: "u-4", Status: TaskTodo, Priority: PriorityHigh, DueDate: "2026-12-01"},
		{ID: "t-5", Title: "Push notification plan", Description: "", ProjectID: "p-2", AssigneeID: "", Status: TaskTodo, Priority: PriorityLow},
		{ID: "t-6", Title: "Event schema", Description: "Define tracked events and properties.", ProjectID: "p-3", AssigneeID: "u-4", Status: TaskDone, Priority: PriorityHigh, DueDate: "2026-08-14"},
		{ID: "t-7", Title: "Retention dashboard", Description: "Cohort retention charts.", ProjectID: "p-3", AssigneeID: "u-3", Status: TaskDone, Priority: PriorityMedium, DueDate: "2026-09-12"},
		{ID: "t-8", Title: "Data quality alerts", Description: "Alert on missing ingestion batches.", ProjectID: "p-3", AssigneeID: "u-4", Status: TaskDone, Priority: PriorityMedium, DueDate: "2026-09-25"},
	}
}
