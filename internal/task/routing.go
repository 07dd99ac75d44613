package task

// RouteAgenda buckets every task id into exactly one horizon. Rule order is
// fixed and first match wins: plan linkage, then MUST or same-day deadline,
// then a deadline within the week, then someday.
func RouteAgenda(tasks []Task, ctxs map[string]Context, prios map[string]PriorityResult) Agenda {
	a := Agenda{
		Today:    []string{},
		Upcoming: []string{},
		Someday:  []string{},
		Projects: []string{},
	}
	for _, t := range tasks {
		switch RouteOne(t, ctxs[t.ID], prios[t.ID]) {
		case BucketProjects:
			a.Projects = append(a.Projects, t.ID)
		case BucketToday:
			a.Today = append(a.Today, t.ID)
		case BucketUpcoming:
			a.Upcoming = append(a.Upcoming, t.ID)
		default:
			a.Someday = append(a.Someday, t.ID)
		}
	}
	return a
}

// RouteOne resolves the horizon for a single task.
func RouteOne(t Task, c Context, p PriorityResult) Bucket {
	if t.PlanID != "" {
		return BucketProjects
	}
	if p.Priority == PriorityMust || c.SameDay {
		return BucketToday
	}
	if c.WithinWeek {
		return BucketUpcoming
	}
	return BucketSomeday
}
