/*
Package glgen generates Python OpenGL binding modules from an API
registry such as the Khronos gl.xml.

For every registry module (an extension or a core feature block) two
files are written: a raw module declaring the constants and functions,
and a friendly module that imports the raw one and carries the
extension's documentation. Hand-written code below the
"### END AUTOGENERATED SECTION" line of a friendly module is kept across
regeneration, and files whose content would not change are not
touched.

# Architecture pipeline (for developers)

Each element in the pipeline has distinct sub-packages that do a specific part. These are then "glued" together in [Generator.Run].
 1. [config]: Parse the user-supplied 'glgen.toml' and module list files
 2. [registry] and [registry/khronos]: Load the registry modules
 3. [naming]: Derive names and output paths for each module
 4. [specdoc]: Optionally fetch the extension specification and extract its overview
 5. [render]: Render declarations and whole modules from templates
 6. [merge]: Write files, preserving hand-written code
*/
package glgen
