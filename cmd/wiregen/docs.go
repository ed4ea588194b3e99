package main

// General API documentation for swaggo. Build with -tags=swagger to serve it.
//
// @title           wiregen API
// @version         1.0
// @description     Converts wireframe images into HTML pages using a hosted generative model.
//
// @BasePath  /
//
// @schemes http
