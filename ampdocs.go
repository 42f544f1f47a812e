// Package ampdocs provides a local AWS Amplify Gen 2 documentation
// search service. It crawls the documentation site, stores pages as
// markdown in a local SQLite database, and answers free-text queries
// with ranked results through a CLI and an MCP server.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., sqlite/, goquery/, search/, crawl/).
package ampdocs
