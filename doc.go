/*
Package upsilon hosts the repository-facing subsystems of the upsilon
git forge.

The pkg/vcs tree contains the native git layer and the actor that
bridges it to concurrent callers: one worker goroutine owns each open
repository and its handle store, and the web, API and SSH front ends
talk to it through a correlated request/response protocol.
*/
package upsilon
