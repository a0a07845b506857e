// Package policy holds the access rules for tasks and comments.
//
// Every rule is a pure function of the acting user and the resource it
// targets. A rule returns nil when the action is allowed and ErrAccessDenied
// otherwise; a nil actor is always denied. Callers load the resource first
// when a rule needs it, so a missing resource surfaces as not-found before
// any access decision is made.
//
// Two tiers of task modification exist. Admins may rewrite any field, while
// a non-admin assignee may only change the status. A task author who is not
// also the assignee can read and comment on the task but cannot modify it.
package policy
