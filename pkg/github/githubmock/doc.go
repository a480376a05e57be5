// Package githubmock serves an in-memory copy of the issues REST API for a
// single repository, so API tests can run without network access or a real
// account.
//
// # Routes
//
//	┌────────┬──────────────────────────────────────┬──────────────────────────────┐
//	│ Method │ Path                                 │ Notes                        │
//	├────────┼──────────────────────────────────────┼──────────────────────────────┤
//	│ GET    │ /repos/{owner}/{repo}/issues         │ state, labels, per_page, page│
//	│ POST   │ /repos/{owner}/{repo}/issues         │ token required, 201          │
//	│ GET    │ /repos/{owner}/{repo}/issues/{n}     │ 404 when unknown             │
//	│ PATCH  │ /repos/{owner}/{repo}/issues/{n}     │ author or collaborator only  │
//	└────────┴──────────────────────────────────────┴──────────────────────────────┘
//
// Any other path, or a different owner/repo, answers 404 {"message":"Not Found"}.
//
// # Authentication
//
// Tokens are HS256 JWTs minted by IssueToken; the subject is the login.
// Both "Authorization: Bearer <t>" and "Authorization: token <t>" are
// accepted. Reads may be anonymous, writes may not.
//
// # Behaviour
//
//   - A create without a non-empty title fails with 422 Validation Failed
//     and a missing_field error on title.
//   - Assignees that are not collaborators are dropped silently.
//   - Closing sets closed_at, closed_by and state_reason=completed;
//     reopening clears them and sets state_reason=reopened.
//
// # Usage
//
//	srv := githubmock.New("octo-org", "sandbox", githubmock.WithCollaborators("alice"))
//	if err := srv.Start("127.0.0.1:0"); err != nil { ... }
//	defer srv.Stop()
//
//	token, _ := srv.IssueToken("alice")
//	// point the REST client at srv.URL() with token
package githubmock
