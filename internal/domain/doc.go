// Package domain contains the core business entities of the task board:
// users, tasks and comments, together with the value types (roles, task
// statuses and priorities) and validation rules that apply to them.
//
// Entities here are independent of storage and transport. Authorization
// decisions live in the policy package; persistence lives behind the
// interfaces in the store package.
package domain
