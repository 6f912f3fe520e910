package frame

import (
	"fmt"
	"strings"
)

// ScriptMarker identifies the injected tool script inside a content
// document. Its presence is the idempotence check: a document that
// already carries it never receives a second copy, and it is stripped
// before markup is serialized back into state.
const ScriptMarker = "flowcraft-tools"

const tailwindScript = `<script src="https://cdn.tailwindcss.com"></script>`

// HasToolScript reports whether markup already carries the tool script.
func HasToolScript(html string) bool {
	return strings.Contains(html, `id="`+ScriptMarker+`"`)
}

// Augment wraps a screen's stored markup for display: the Tailwind
// runtime in front, the tool script behind. Injection is idempotent —
// markup that already has the script comes back unchanged, so dirty
// state can never stack scripts.
func Augment(html string, index int, tool string, prototype bool) string {
	if html == "" {
		return ""
	}
	if HasToolScript(html) {
		return html
	}
	return tailwindScript + html + toolScript(index, tool, prototype)
}

// toolScript renders the per-context interpreter. The script is a dumb
// reporter: it reads TOOL_CHANGE broadcasts into a local variable,
// paints hover affordances, performs the eraser/wand DOM mutation
// locally, and posts every result back tagged with this context's
// screen index.
func toolScript(index int, tool string, prototype bool) string {
	return fmt.Sprintf(`
<script id="%s">
  let currentTool = '%s';
  const SCREEN_INDEX = %d;

  function serializeDocument() {
    const clone = document.documentElement.cloneNode(true);
    const toolScript = clone.querySelector('#%s');
    if (toolScript) toolScript.remove();
    return clone.outerHTML;
  }

  function reportHtmlUpdated() {
    window.parent.postMessage({
      type: 'HTML_UPDATED',
      screenIndex: SCREEN_INDEX,
      html: serializeDocument()
    }, '*');
  }

  window.addEventListener('message', (e) => {
    if (e.data.type === 'TOOL_CHANGE') {
      currentTool = e.data.tool;
    }
    if (e.data.type === 'APPLY_MAGIC_EDIT') {
      const target = document.querySelector('[data-editing="true"]');
      if (target) {
        target.outerHTML = e.data.newHtml;
        reportHtmlUpdated();
      }
    }
  });

  document.body.addEventListener('mouseover', (e) => {
    if (currentTool === 'eraser') {
      e.target.style.outline = '2px solid red';
      e.target.style.backgroundColor = 'rgba(255, 0, 0, 0.1)';
    } else if (currentTool === 'wand') {
      e.target.style.outline = '2px solid #8a2be2';
      e.target.style.backgroundColor = 'rgba(138, 43, 226, 0.1)';
    }
  });

  document.body.addEventListener('mouseout', (e) => {
    if (currentTool === 'eraser' || currentTool === 'wand') {
      e.target.style.outline = '';
      e.target.style.backgroundColor = '';
    }
  });

  document.body.addEventListener('click', (e) => {
    if (currentTool === 'eraser') {
      e.preventDefault();
      e.stopPropagation();
      e.target.remove();
      reportHtmlUpdated();
    } else if (currentTool === 'wand') {
      e.preventDefault();
      e.stopPropagation();
      const prev = document.querySelector('[data-editing="true"]');
      if (prev) prev.removeAttribute('data-editing');
      e.target.setAttribute('data-editing', 'true');
      const rect = e.target.getBoundingClientRect();
      window.parent.postMessage({
        type: 'MAGIC_SELECT',
        screenIndex: SCREEN_INDEX,
        rect: { top: rect.top, left: rect.left, width: rect.width, height: rect.height },
        html: e.target.outerHTML
      }, '*');
    }
  });

  if (%t) {
    const interactives = document.querySelectorAll('button, a, input, [role="button"]');
    interactives.forEach(el => {
      el.addEventListener('mousedown', (e) => {
        if (currentTool === 'select') {
          e.preventDefault();
          e.stopPropagation();
          const rect = el.getBoundingClientRect();
          window.parent.postMessage({
            type: 'START_CONNECTION',
            screenIndex: SCREEN_INDEX,
            elementId: el.id || el.innerText || 'unknown',
            x: rect.left + rect.width / 2,
            y: rect.top + rect.height / 2,
            rect: { top: rect.top, left: rect.left, width: rect.width, height: rect.height }
          }, '*');
        }
      });
    });
  }
</script>`, ScriptMarker, tool, index, ScriptMarker, prototype)
}
