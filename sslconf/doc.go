// Package sslconf adjusts the SSL trust policy of a server.
package sslconf
